package constants

const (
	// Input encodings
	SessionDateLayout   = "01/02/06"
	ClockLayout         = "15:04:05"
	DetectionTimeLayout = "01/02/06 15:04:05"
	FilterTimeLayout    = "2006/01/02 15:04:05"

	// Output encodings
	ExportDateLayout = "1/02/2006"

	// Interior hour buckets are labelled "H:00:00" without zero padding.
	HourLabelFormat = "%d:00:00"

	MinutesPerHour = 60
)
