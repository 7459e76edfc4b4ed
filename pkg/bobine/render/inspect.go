package render

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/xuri/excelize/v2"
)

// chartKinds maps OOXML plot elements to chart kinds.
var chartKinds = map[string]string{
	"lineChart":     "Line",
	"line3DChart":   "3DLine",
	"barChart":      "Bar",
	"bar3DChart":    "3DBar",
	"areaChart":     "Area",
	"pieChart":      "Pie",
	"pie3DChart":    "3DPie",
	"doughnutChart": "Doughnut",
	"scatterChart":  "XYScatter",
}

// Inventory lists what a saved report holds.
type Inventory struct {
	Sheets     []string                      `json:"sheets"`
	Charts     map[string][]models.Chart     `json:"charts"`
	PrintAreas map[string][]models.PrintArea `json:"print_areas"`
}

// Inspect reads back the sheets, charts and print areas of a workbook.
func Inspect(path string) (*Inventory, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inv := &Inventory{Sheets: f.GetSheetList(), PrintAreas: PrintAreas(f)}
	if inv.Charts, err = Charts(path); err != nil {
		return nil, err
	}
	return inv, nil
}

// PrintAreas returns the print areas of f by sheet.
func PrintAreas(f *excelize.File) map[string][]models.PrintArea {
	out := make(map[string][]models.PrintArea)
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		sheet, areas := parsePrintAreaReference(strings.TrimPrefix(dn.RefersTo, "="))
		if sheet == "" {
			sheet = dn.Scope
		}
		if sheet != "" && len(areas) > 0 {
			out[sheet] = append(out[sheet], areas...)
		}
	}
	return out
}

// parsePrintAreaReference splits 'Sheet'!$A$1:$D$10[,...] into the sheet
// name and its areas.
func parsePrintAreaReference(ref string) (string, []models.PrintArea) {
	var sheet string
	var areas []models.PrintArea
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}
		if sheet == "" {
			sheet = strings.ReplaceAll(strings.Trim(part[:idx], "'"), "''", "'")
		}
		if a, ok := parseArea(part[idx+1:]); ok {
			areas = append(areas, a)
		}
	}
	return sheet, areas
}

func parseArea(s string) (models.PrintArea, bool) {
	parts := strings.Split(strings.ReplaceAll(s, "$", ""), ":")
	if len(parts) != 2 {
		return models.PrintArea{}, false
	}
	c1, r1, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.PrintArea{}, false
	}
	c2, r2, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.PrintArea{}, false
	}
	return models.PrintArea{R1: r1, C1: c1, R2: r2, C2: c2}, true
}

// Charts reads the charts of every sheet of an xlsx file, ordered by
// their anchor cell.
func Charts(path string) (map[string][]models.Chart, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out := make(map[string][]models.Chart)
	for sheet, drawing := range sheetDrawings(&r.Reader) {
		for _, ref := range drawingCharts(&r.Reader, drawing) {
			data, err := readZipFile(&r.Reader, ref.path)
			if err != nil || data == nil {
				continue
			}
			c := parseChartXML(data)
			c.Sheet = sheet
			c.Anchor, _ = excelize.CoordinatesToCellName(ref.col+1, ref.row+1)
			out[sheet] = append(out[sheet], c)
		}
		sort.SliceStable(out[sheet], func(i, j int) bool {
			a, b := out[sheet][i].Anchor, out[sheet][j].Anchor
			ac, ar, _ := excelize.CellNameToCoordinates(a)
			bc, br, _ := excelize.CellNameToCoordinates(b)
			if ar != br {
				return ar < br
			}
			return ac < bc
		})
	}
	return out, nil
}

// sheetDrawings maps sheet names to their drawing part.
func sheetDrawings(r *zip.Reader) map[string]string {
	out := make(map[string]string)
	wb, _ := readZipFile(r, "xl/workbook.xml")
	rels, _ := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if wb == nil || rels == nil {
		return out
	}
	for sheet, part := range sheetParts(wb, rels) {
		relsPath := strings.Replace(part, "worksheets/", "worksheets/_rels/", 1) + ".rels"
		data, _ := readZipFile(r, relsPath)
		if data == nil {
			continue
		}
		if target := relationshipTarget(data, "drawing"); target != "" {
			out[sheet] = resolveRelativePath(target, "xl/worksheets")
		}
	}
	return out
}

type chartRef struct {
	path     string
	col, row int
}

// drawingCharts returns the chart parts anchored in a drawing.
func drawingCharts(r *zip.Reader, drawing string) []chartRef {
	data, _ := readZipFile(r, drawing)
	relsPath := strings.Replace(drawing, "drawings/", "drawings/_rels/", 1) + ".rels"
	rels, _ := readZipFile(r, relsPath)
	if data == nil || rels == nil {
		return nil
	}
	targets := relationshipTargets(rels, "chart")

	var out []chartRef
	d := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || (se.Name.Local != "twoCellAnchor" && se.Name.Local != "oneCellAnchor") {
			continue
		}
		id, col, row := parseAnchor(d)
		if target, ok := targets[id]; ok {
			out = append(out, chartRef{path: resolveRelativePath(target, "xl/drawings"), col: col, row: row})
		}
	}
	return out
}

// parseAnchor reads one drawing anchor: the chart relationship id and the
// zero-based cell of its from marker.
func parseAnchor(d *xml.Decoder) (id string, col, row int) {
	inFrom := false
	for depth := 1; depth > 0; {
		tok, err := d.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "from":
				inFrom = true
			case "col", "row":
				if !inFrom {
					continue
				}
				txt, _ := readElementText(d)
				depth--
				n, _ := strconv.Atoi(strings.TrimSpace(txt))
				if t.Name.Local == "col" {
					col = n
				} else {
					row = n
				}
			case "chart":
				for _, a := range t.Attr {
					if a.Name.Local == "id" {
						id = a.Value
					}
				}
			}
		case xml.EndElement:
			depth--
			if t.Name.Local == "from" {
				inFrom = false
			}
		}
	}
	return id, col, row
}

// parseChartXML reads the kind, title and series of a chart part.
func parseChartXML(data []byte) models.Chart {
	c := models.Chart{Kind: "unknown"}
	d := xml.NewDecoder(strings.NewReader(string(data)))
	inPlot := false
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch local := t.Name.Local; {
			case local == "plotArea":
				inPlot = true
			case local == "title" && !inPlot && c.Title == "":
				c.Title = parseTitle(d)
			case inPlot && chartKinds[local] != "" && c.Kind == "unknown":
				c.Kind = chartKinds[local]
			case inPlot && local == "grouping":
				if v := attr(t, "val"); v == "stacked" || v == "percentStacked" {
					c.Stacked = true
				}
			case inPlot && local == "ser":
				c.Series = append(c.Series, parseSeries(d))
			}
		case xml.EndElement:
			if t.Name.Local == "plotArea" {
				inPlot = false
			}
		}
	}
	return c
}

func parseTitle(d *xml.Decoder) string {
	var parts []string
	for depth := 1; depth > 0; {
		tok, err := d.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				if txt, err := readElementText(d); err == nil {
					parts = append(parts, txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

func parseSeries(d *xml.Decoder) models.ChartSeries {
	var s models.ChartSeries
	for depth := 1; depth > 0; {
		tok, err := d.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "tx":
				s.Name, s.NameRange = parseSeriesName(d)
				depth--
			case "cat":
				s.Categories = parseRangeFormula(d)
				depth--
			case "val":
				s.Values = parseRangeFormula(d)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return s
}

func parseSeriesName(d *xml.Decoder) (name, ref string) {
	for depth := 1; depth > 0; {
		tok, err := d.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "f":
				txt, _ := readElementText(d)
				ref = strings.TrimSpace(txt)
				depth--
			case "v":
				txt, _ := readElementText(d)
				name = strings.TrimSpace(txt)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return name, ref
}

func parseRangeFormula(d *xml.Decoder) string {
	var ref string
	for depth := 1; depth > 0; {
		tok, err := d.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "f" && ref == "" {
				txt, _ := readElementText(d)
				ref = strings.TrimSpace(txt)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return ref
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// sheetParts maps sheet names to worksheet part paths.
func sheetParts(workbook, rels []byte) map[string]string {
	ids := make(map[string]string)
	d := xml.NewDecoder(strings.NewReader(string(workbook)))
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "sheet" {
			if name, id := attr(se, "name"), attr(se, "id"); name != "" && id != "" {
				ids[id] = name
			}
		}
	}
	out := make(map[string]string)
	for id, target := range relationshipTargets(rels, "worksheet") {
		if name, ok := ids[id]; ok {
			out[name] = resolveRelativePath(target, "xl")
		}
	}
	return out
}

// relationshipTargets returns the targets by id of relationships whose
// type contains kind.
func relationshipTargets(data []byte, kind string) map[string]string {
	out := make(map[string]string)
	d := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			if strings.Contains(strings.ToLower(attr(se, "Type")), kind) {
				out[attr(se, "Id")] = attr(se, "Target")
			}
		}
	}
	return out
}

func relationshipTarget(data []byte, kind string) string {
	for _, t := range relationshipTargets(data, kind) {
		return t
	}
	return ""
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

func readElementText(d *xml.Decoder) (string, error) {
	var b strings.Builder
	for depth := 1; depth > 0; {
		tok, err := d.Token()
		if err != nil {
			return b.String(), err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return b.String(), nil
}

// resolveRelativePath resolves a relationship target against the
// directory of the part that references it.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	dir := baseDir
	for strings.HasPrefix(target, "../") {
		target = strings.TrimPrefix(target, "../")
		if i := strings.LastIndex(dir, "/"); i >= 0 {
			dir = dir[:i]
		} else {
			dir = ""
		}
	}
	if dir == "" {
		return target
	}
	return dir + "/" + target
}
