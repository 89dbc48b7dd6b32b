package history

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	KindDepth    = "depth history"
	KindRunePool = "rune pool history"
)

// DepthRecord - интервал истории глубины пула.
type DepthRecord struct {
	StartTime      float64 `json:"startTime" bson:"start_time"`
	EndTime        float64 `json:"endTime" bson:"end_time"`
	AssetDepth     float64 `json:"assetDepth" bson:"asset_depth"`
	RuneDepth      float64 `json:"runeDepth" bson:"rune_depth"`
	AssetPrice     float64 `json:"assetPrice" bson:"asset_price"`
	AssetPriceUSD  float64 `json:"assetPriceUSD" bson:"asset_price_usd"`
	LiquidityUnits float64 `json:"liquidityUnits" bson:"liquidity_units"`
	MembersCount   float64 `json:"membersCount" bson:"members_count"`
	SynthUnits     float64 `json:"synthUnits" bson:"synth_units"`
	SynthSupply    float64 `json:"synthSupply" bson:"synth_supply"`
	Units          float64 `json:"units" bson:"units"`
	Luvi           float64 `json:"luvi" bson:"luvi"`
}

func (r *DepthRecord) fields() []field {
	return []field{
		{"startTime", &r.StartTime},
		{"endTime", &r.EndTime},
		{"assetDepth", &r.AssetDepth},
		{"runeDepth", &r.RuneDepth},
		{"assetPrice", &r.AssetPrice},
		{"assetPriceUSD", &r.AssetPriceUSD},
		{"liquidityUnits", &r.LiquidityUnits},
		{"membersCount", &r.MembersCount},
		{"synthUnits", &r.SynthUnits},
		{"synthSupply", &r.SynthSupply},
		{"units", &r.Units},
		{"luvi", &r.Luvi},
	}
}

func (r *DepthRecord) UnmarshalJSON(data []byte) error {
	var rec DepthRecord
	if err := decodeFields(data, rec.fields(), false); err != nil {
		return err
	}
	*r = rec
	return nil
}

// RunePoolRecord - интервал истории rune pool.
type RunePoolRecord struct {
	StartTime float64 `json:"startTime" bson:"start_time"`
	EndTime   float64 `json:"endTime" bson:"end_time"`
	Count     float64 `json:"count" bson:"count"`
	Units     float64 `json:"units" bson:"units"`
}

func (r *RunePoolRecord) fields() []field {
	return []field{
		{"startTime", &r.StartTime},
		{"endTime", &r.EndTime},
		{"count", &r.Count},
		{"units", &r.Units},
	}
}

func (r *RunePoolRecord) UnmarshalJSON(data []byte) error {
	var rec RunePoolRecord
	if err := decodeFields(data, rec.fields(), false); err != nil {
		return err
	}
	*r = rec
	return nil
}

type DepthMeta struct {
	StartTime        float64 `json:"startTime"`
	EndTime          float64 `json:"endTime"`
	PriceShiftLoss   float64 `json:"priceShiftLoss"`
	LuviIncrease     float64 `json:"luviIncrease"`
	StartAssetDepth  float64 `json:"startAssetDepth"`
	StartRuneDepth   float64 `json:"startRuneDepth"`
	StartLPUnits     float64 `json:"startLPUnits"`
	StartMemberCount float64 `json:"startMemberCount"`
	StartSynthUnits  float64 `json:"startSynthUnits"`
	EndAssetDepth    float64 `json:"endAssetDepth"`
	EndRuneDepth     float64 `json:"endRuneDepth"`
	EndLPUnits       float64 `json:"endLPUnits"`
	EndMemberCount   float64 `json:"endMemberCount"`
	EndSynthUnits    float64 `json:"endSynthUnits"`
}

func (m *DepthMeta) UnmarshalJSON(data []byte) error {
	var meta DepthMeta
	err := decodeFields(data, []field{
		{"startTime", &meta.StartTime},
		{"endTime", &meta.EndTime},
		{"priceShiftLoss", &meta.PriceShiftLoss},
		{"luviIncrease", &meta.LuviIncrease},
		{"startAssetDepth", &meta.StartAssetDepth},
		{"startRuneDepth", &meta.StartRuneDepth},
		{"startLPUnits", &meta.StartLPUnits},
		{"startMemberCount", &meta.StartMemberCount},
		{"startSynthUnits", &meta.StartSynthUnits},
		{"endAssetDepth", &meta.EndAssetDepth},
		{"endRuneDepth", &meta.EndRuneDepth},
		{"endLPUnits", &meta.EndLPUnits},
		{"endMemberCount", &meta.EndMemberCount},
		{"endSynthUnits", &meta.EndSynthUnits},
	}, true)
	if err != nil {
		return fmt.Errorf("meta: %w", err)
	}
	*m = meta
	return nil
}

type RunePoolMeta struct {
	StartTime  float64 `json:"startTime"`
	EndTime    float64 `json:"endTime"`
	StartUnits float64 `json:"startUnits"`
	StartCount float64 `json:"startCount"`
	EndUnits   float64 `json:"endUnits"`
	EndCount   float64 `json:"endCount"`
}

func (m *RunePoolMeta) UnmarshalJSON(data []byte) error {
	var meta RunePoolMeta
	err := decodeFields(data, []field{
		{"startTime", &meta.StartTime},
		{"endTime", &meta.EndTime},
		{"startUnits", &meta.StartUnits},
		{"startCount", &meta.StartCount},
		{"endUnits", &meta.EndUnits},
		{"endCount", &meta.EndCount},
	}, true)
	if err != nil {
		return fmt.Errorf("meta: %w", err)
	}
	*m = meta
	return nil
}

// DepthHistory - ответ /v2/history/depths/{pool}.
type DepthHistory struct {
	Meta      DepthMeta     `json:"meta"`
	Intervals []DepthRecord `json:"intervals"`
}

// RunePoolHistory - ответ /v2/history/runepool.
type RunePoolHistory struct {
	Meta      RunePoolMeta     `json:"meta"`
	Intervals []RunePoolRecord `json:"intervals"`
}

func DecodeDepthHistory(data []byte) (DepthHistory, error) {
	var h DepthHistory
	if err := decodeEnvelope(data, &h.Meta, &h.Intervals); err != nil {
		return DepthHistory{}, err
	}
	return h, nil
}

func DecodeRunePoolHistory(data []byte) (RunePoolHistory, error) {
	var h RunePoolHistory
	if err := decodeEnvelope(data, &h.Meta, &h.Intervals); err != nil {
		return RunePoolHistory{}, err
	}
	return h, nil
}

func decodeEnvelope(data []byte, meta, intervals interface{}) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	for k := range obj {
		if k != "meta" && k != "intervals" {
			return fmt.Errorf("%w: unknown field %q", ErrDecode, k)
		}
	}

	rawMeta, ok := obj["meta"]
	if !ok {
		return fmt.Errorf("%w: missing field %q", ErrDecode, "meta")
	}
	rawIntervals, ok := obj["intervals"]
	if !ok {
		return fmt.Errorf("%w: missing field %q", ErrDecode, "intervals")
	}

	if err := json.Unmarshal(rawMeta, meta); err != nil {
		return wrapDecode(err)
	}
	if err := json.Unmarshal(rawIntervals, intervals); err != nil {
		return wrapDecode(err)
	}

	return nil
}

// wrapDecode гарантирует, что ошибки самого encoding/json тоже помечены ErrDecode.
func wrapDecode(err error) error {
	if errors.Is(err, ErrDecode) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrDecode, err)
}
