package models

// Source identifies one input data source of a report.
type Source string

// Known sources, named as in report requests.
const (
	SourceContext   Source = "context"
	SourcePyrolysis Source = "pignat"
	SourceOnline    Source = "chromeleon_online"
	SourceOffline   Source = "chromeleon_offline"
	SourcePermanent Source = "chromeleon_online_permanent_gas"
	SourceResume    Source = "resume"
)

// ReportSources lists the sources that produce report sections, in
// workbook order.
var ReportSources = []Source{SourcePyrolysis, SourceOnline, SourceOffline, SourcePermanent, SourceResume}
