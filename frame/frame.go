// Package frame defines the decoded frame data model and the codec for
// the packed binary frame blocks.
//
// A frame is one full ion-mobility separation cycle; each of its scans
// is one mobility time slice holding (mobility index, intensity) peaks.
// Decode turns a packed block payload into scans; Encoder is the
// in-memory reference implementation of the same wire format, used to
// build synthetic frames for tests and tooling.
package frame

// MSLevel is the mass spectrometry level of a frame.
type MSLevel uint8

const (
	// MSLevelUnknown is the zero value for unrecognized MsMsType codes.
	MSLevelUnknown MSLevel = iota
	// MSLevelMS1 marks precursor (survey) frames.
	MSLevelMS1
	// MSLevelMS2 marks fragment frames.
	MSLevelMS2
)

// MSLevelFromMsMsType maps the frame table's MsMsType column onto an
// MSLevel. Code 0 is MS1; codes 8 (DDA-PASEF) and 9 (DIA-PASEF) are MS2.
func MSLevelFromMsMsType(msmsType uint8) MSLevel {
	switch msmsType {
	case 0:
		return MSLevelMS1
	case 8, 9:
		return MSLevelMS2
	default:
		return MSLevelUnknown
	}
}

func (l MSLevel) String() string {
	switch l {
	case MSLevelMS1:
		return "MS1"
	case MSLevelMS2:
		return "MS2"
	default:
		return "Unknown"
	}
}

// AcquisitionType is the acquisition mode of a dataset, derived once at
// open time from the MsMsType codes of its frames.
type AcquisitionType uint8

const (
	// AcquisitionUnknown marks datasets without PASEF fragment frames.
	AcquisitionUnknown AcquisitionType = iota
	// AcquisitionDDAPASEF marks data-dependent PASEF acquisitions
	// (MsMsType 8 frames present).
	AcquisitionDDAPASEF
	// AcquisitionDIAPASEF marks data-independent PASEF acquisitions
	// (MsMsType 9 frames present, no MsMsType 8).
	AcquisitionDIAPASEF
)

func (a AcquisitionType) String() string {
	switch a {
	case AcquisitionDDAPASEF:
		return "DDA-PASEF"
	case AcquisitionDIAPASEF:
		return "DIA-PASEF"
	default:
		return "Unknown"
	}
}

// Polarity is the ion polarity of a frame.
type Polarity uint8

const (
	// PolarityUnknown is the zero value for unrecognized polarity codes.
	PolarityUnknown Polarity = iota
	// PolarityPositive marks positive-mode frames.
	PolarityPositive
	// PolarityNegative marks negative-mode frames.
	PolarityNegative
)

// PolarityFromString maps the frame table's Polarity column ("+" or "-")
// onto a Polarity.
func PolarityFromString(s string) Polarity {
	switch s {
	case "+":
		return PolarityPositive
	case "-":
		return PolarityNegative
	default:
		return PolarityUnknown
	}
}

func (p Polarity) String() string {
	switch p {
	case PolarityPositive:
		return "+"
	case PolarityNegative:
		return "-"
	default:
		return "?"
	}
}

// Scan is one ion-mobility time slice of a frame: parallel slices of
// mobility indices and intensities with equal length.
//
// Mobility indices are strictly increasing within a scan. The decoder
// produces them in that order by construction and never re-sorts.
type Scan struct {
	// MobilityIndices are the absolute mobility indices of the peaks.
	MobilityIndices []uint32
	// Intensities are the peak intensities, index-aligned with
	// MobilityIndices.
	Intensities []uint32
}

// Len returns the number of peaks in the scan.
func (s Scan) Len() int {
	return len(s.MobilityIndices)
}

// ExtendedMeta carries the optional frame table columns. Its presence is
// a dataset-wide property asserted once at open time: either every frame
// of an acquisition has extended metadata or none does.
type ExtendedMeta struct {
	// SummedIntensities is the total ion current of the frame.
	SummedIntensities float64
	// MaxIntensity is the highest single peak intensity of the frame.
	MaxIntensity float64
}

// MaldiInfo is the spatial and laser metadata of one imaging frame.
//
// The FrameID field is a non-owning lookup key back to the frame the row
// describes, not a reference the info holds alive. MALDI metadata exists
// for every frame of an imaging dataset or for none at all.
//
// The spot name, position, and laser columns are nullable in the
// metadata store; an absent value loads as the field's zero value. The
// pixel coordinates and frame key are always recorded by the
// instrument.
type MaldiInfo struct {
	// FrameID is the identifier of the frame this row belongs to.
	FrameID int64
	// SpotName is the sample spot identifier.
	SpotName string
	// PixelX and PixelY are the image grid coordinates.
	PixelX int32
	PixelY int32
	// PositionX and PositionY are the physical stage coordinates in
	// micrometers.
	PositionX float64
	PositionY float64
	// LaserPower is the laser power setting in percent.
	LaserPower float64
	// LaserRepRate is the laser repetition rate in Hz.
	LaserRepRate float64
	// LaserShots is the number of laser shots accumulated into the frame.
	LaserShots int32
}

// Frame is one ion-mobility separation cycle with its acquisition
// metadata. The reader never mutates a frame after handing it out, and
// callers must not either: the fields, ScanSource included, are exported
// for construction by readers and synthetic-data tooling, not for
// reassignment on a live frame.
//
// Scan data is not stored on the frame: Scans decodes the underlying
// block on every call, so repeated calls against an unchanged file
// return bit-identical content and the core never caches decoded peaks.
type Frame struct {
	// ID is the unique, strictly increasing frame identifier.
	ID int64
	// Time is the acquisition (retention) time in seconds.
	Time float64
	// MSLevel is derived from the frame table's MsMsType column.
	MSLevel MSLevel
	// Polarity is the ion polarity of the frame.
	Polarity Polarity
	// ScanMode is the vendor scan mode code.
	ScanMode uint8
	// NumScans is the number of mobility scans in the frame. It bounds
	// every valid scan index.
	NumScans uint32
	// PeakCount is the declared total number of peaks across all scans.
	PeakCount uint64
	// AccumulationTime is the ion accumulation time in milliseconds.
	AccumulationTime float64
	// IntensityCorrectionFactor is 1/AccumulationTime; multiply decoded
	// intensities by it to compare frames with different accumulation.
	IntensityCorrectionFactor float64

	// Extended is nil unless the dataset carries the optional extended
	// frame columns.
	Extended *ExtendedMeta
	// Maldi is nil unless the dataset is an imaging acquisition.
	Maldi *MaldiInfo

	// ScanSource fetches and decodes the frame's block. The reader binds
	// it at construction; a nil source yields no scans.
	ScanSource func() ([]Scan, error)
}

// Scans decodes and returns the frame's scans in index order
// 0..NumScans-1.
//
// Decoding happens on every call; callers that need the data repeatedly
// should keep the returned slice.
func (f *Frame) Scans() ([]Scan, error) {
	if f.ScanSource == nil {
		return nil, nil
	}

	return f.ScanSource()
}
