package constants

const (
	// Detector families used to label unclassified calls.
	TseepFamily  = "Tseeps"
	ThrushFamily = "Thrushes"

	// TseepDetectorMarker is matched against the raw detector name.
	TseepDetectorMarker = "tseep"

	// SuspectSpeciesCode is usually an accidental "N" (Next) keypress in Vesper.
	SuspectSpeciesCode = "nowa"

	// UnclassifiedCommonName is reported to eBird for calls without a species.
	UnclassifiedCommonName = "passerine sp."
)
