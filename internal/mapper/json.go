package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"gitscout-be/pkg/matching"
)

// jsonb column helpers shared by the mappers. Decoding failures fall back to
// empty values; the storage boundary validates on the way in, not out.

func toJSONStrings(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}

func fromJSONStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}

func toJSONReasons(reasons []matching.Reason) datatypes.JSON {
	if reasons == nil {
		reasons = []matching.Reason{}
	}
	b, err := json.Marshal(reasons)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}

func fromJSONReasons(raw datatypes.JSON) []matching.Reason {
	if len(raw) == 0 {
		return nil
	}
	var reasons []matching.Reason
	if err := json.Unmarshal(raw, &reasons); err != nil {
		return nil
	}
	return reasons
}
