package models

// SensorLog is a pyrolysis sensor export.
type SensorLog struct {
	// Path is the file the log was read from.
	Path string `json:"path"`
	// Encoding is the character set that decoded the file.
	Encoding string `json:"encoding"`
	// Delimiter is the detected field separator.
	Delimiter string `json:"delimiter"`
	// Table holds the rows; the first column is the time stamp.
	Table *Table `json:"table"`
}

// TimeRange bounds a sensor log by its first and last time stamps.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsZero reports whether neither bound is set.
func (r TimeRange) IsZero() bool { return r.Start == "" && r.End == "" }
