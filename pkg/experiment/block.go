package experiment

import (
	"slices"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
	"github.com/matzehuels/nfbstudio/pkg/export"
)

// Feedback types understood by the runtime.
const (
	FeedbackBaseline = "Baseline"
	FeedbackBar      = "CircleFeedback"
)

// Statistics types used when a block updates signal statistics.
const (
	StatisticsMeanStd = "meanstd"
	StatisticsMax     = "max"
)

// FeedbackSourceAll selects every signal as the feedback source.
const FeedbackSourceAll = "All"

var (
	feedbackTypes   = []string{FeedbackBaseline, FeedbackBar}
	statisticsTypes = []string{StatisticsMeanStd, StatisticsMax}
)

// Block is one protocol of the experiment: a period of fixed duration with
// a given kind of feedback shown to the subject.
type Block struct {
	Name              string  `json:"name"`
	Duration          float64 `json:"duration"`
	DurationDeviation float64 `json:"duration_deviation"`
	FeedbackSource    string  `json:"feedback_source"`
	FeedbackType      string  `json:"feedback_type"`
	MockSignalPath    string  `json:"mock_signal_path"`
	UpdateStatistics  bool    `json:"update_statistics"`
	StatisticsType    string  `json:"statistics_type"`
	DropOutliers      int     `json:"drop_outliers"`
	Voiceover         bool    `json:"voiceover"`
	Message           string  `json:"message"`
	Beep              bool    `json:"beep"`
	AutoBCIFit        bool    `json:"auto_bci_fit"`
}

// NewBlock returns a baseline block with default settings.
func NewBlock(name string) *Block {
	return &Block{
		Name:           name,
		Duration:       10,
		FeedbackSource: FeedbackSourceAll,
		FeedbackType:   FeedbackBaseline,
		StatisticsType: StatisticsMeanStd,
	}
}

// Validate checks the block's settings.
func (b *Block) Validate() error {
	if err := nfberrors.ValidateName(b.Name); err != nil {
		return err
	}
	if b.Duration < 0 || b.DurationDeviation < 0 {
		return nfberrors.New(nfberrors.ErrCodeValidation, "block %q: durations cannot be negative", b.Name)
	}
	if b.DropOutliers < 0 {
		return nfberrors.New(nfberrors.ErrCodeValidation, "block %q: outlier count cannot be negative", b.Name)
	}
	if !slices.Contains(feedbackTypes, b.FeedbackType) {
		return nfberrors.New(nfberrors.ErrCodeValidation, "block %q: unknown feedback type %q", b.Name, b.FeedbackType)
	}
	if !slices.Contains(statisticsTypes, b.StatisticsType) {
		return nfberrors.New(nfberrors.ErrCodeValidation, "block %q: unknown statistics type %q", b.Name, b.StatisticsType)
	}
	for _, s := range []string{b.FeedbackSource, b.MockSignalPath, b.Message} {
		if err := nfberrors.ValidateLine(s); err != nil {
			return nfberrors.Wrap(nfberrors.ErrCodeValidation, err, "block %q", b.Name)
		}
	}
	return nil
}

func (b *Block) fields() *export.Fields {
	return export.NewFields().
		Set("sProtocolName", b.Name).
		Set("fDuration", b.Duration).
		Set("fRandomOverTime", b.DurationDeviation).
		Set("bUpdateStatistics", b.UpdateStatistics).
		Set("sStatisticsType", b.StatisticsType).
		Set("iDropOutliers", b.DropOutliers).
		Set("sFb_type", b.FeedbackType).
		Set("fbSource", b.FeedbackSource).
		Set("sMockSignalFilePath", b.MockSignalPath).
		Set("bVoiceover", b.Voiceover).
		Set("sMsg", b.Message).
		Set("bBeep", b.Beep).
		Set("bAutoBCIFit", b.AutoBCIFit)
}
