package output

import (
	"encoding/json"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
)

// ToJSON serializes a run result.
func ToJSON(res *models.Result, pretty bool) ([]byte, error) {
	return marshal(res, pretty)
}

// TimelineToJSON serializes a timeline.
func TimelineToJSON(tl models.Timeline, pretty bool) ([]byte, error) {
	return marshal(tl, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
