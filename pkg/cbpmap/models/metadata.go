package models

// MetadataColumns is the column order of the metadata table.
var MetadataColumns = []string{
	"CODE",
	"CODE_MNEMONIC",
	"DESCRIPTION",
	"UNIT_TYPE",
	"DATA_TYPE",
	"DATA_UNIT",
	"SEASONALLY_ADJUSTED",
	"MULTIPLIER",
	"LAST_RELEASE_DATE",
	"FREQUENCY",
	"AGGREGATION_TYPE",
	"ANNUALIZED",
	"STATE",
	"PROVIDER",
	"SOURCE",
	"SOURCE_DESCRIPTION",
	"COUNTRY",
	"DATASET",
}

// MetadataRecord describes one series in the metadata table.
type MetadataRecord struct {
	Code               string `json:"CODE"`
	CodeMnemonic       string `json:"CODE_MNEMONIC"`
	Description        string `json:"DESCRIPTION"`
	UnitType           string `json:"UNIT_TYPE"`
	DataType           string `json:"DATA_TYPE"`
	DataUnit           string `json:"DATA_UNIT"`
	SeasonallyAdjusted string `json:"SEASONALLY_ADJUSTED"`
	Multiplier         int    `json:"MULTIPLIER"`
	LastReleaseDate    string `json:"LAST_RELEASE_DATE"`
	Frequency          string `json:"FREQUENCY"`
	AggregationType    string `json:"AGGREGATION_TYPE"`
	Annualized         string `json:"ANNUALIZED"`
	State              string `json:"STATE"`
	Provider           string `json:"PROVIDER"`
	Source             string `json:"SOURCE"`
	SourceDescription  string `json:"SOURCE_DESCRIPTION"`
	Country            string `json:"COUNTRY"`
	Dataset            string `json:"DATASET"`
}

// Row returns the record's values in MetadataColumns order.
func (m MetadataRecord) Row() []interface{} {
	return []interface{}{
		m.Code,
		m.CodeMnemonic,
		m.Description,
		m.UnitType,
		m.DataType,
		m.DataUnit,
		m.SeasonallyAdjusted,
		m.Multiplier,
		m.LastReleaseDate,
		m.Frequency,
		m.AggregationType,
		m.Annualized,
		m.State,
		m.Provider,
		m.Source,
		m.SourceDescription,
		m.Country,
		m.Dataset,
	}
}

// DatasetConstants holds the fixed metadata fields shared by every record.
type DatasetConstants struct {
	AggregationType   string `json:"aggregation_type"`
	Annualized        string `json:"annualized"`
	State             string `json:"state"`
	Provider          string `json:"provider"`
	Source            string `json:"source"`
	SourceDescription string `json:"source_description"`
	Country           string `json:"country"`
	Dataset           string `json:"dataset"`
}

// DefaultDatasetConstants returns the constants of the RBNZ CBP dataset.
func DefaultDatasetConstants() DatasetConstants {
	return DatasetConstants{
		AggregationType:   "UNDEFINED",
		Annualized:        "FALSE",
		State:             "ACTIVE",
		Provider:          "AfricaAI",
		Source:            "RBNZ",
		SourceDescription: "Reserve Bank of New Zealand",
		Country:           "NZL",
		Dataset:           "CBP",
	}
}
