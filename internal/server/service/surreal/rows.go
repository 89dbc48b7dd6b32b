package surreal

import (
	"github.com/nickzhog/storage-bench/pkg/history"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// Строки таблиц surrealdb. Имена полей совпадают с колонками postgres.
type depthRow struct {
	ID             *models.RecordID `json:"id,omitempty"`
	StartTime      float64          `json:"start_time"`
	EndTime        float64          `json:"end_time"`
	AssetDepth     float64          `json:"asset_depth"`
	RuneDepth      float64          `json:"rune_depth"`
	AssetPrice     float64          `json:"asset_price"`
	AssetPriceUSD  float64          `json:"asset_price_usd"`
	LiquidityUnits float64          `json:"liquidity_units"`
	MembersCount   float64          `json:"members_count"`
	SynthUnits     float64          `json:"synth_units"`
	SynthSupply    float64          `json:"synth_supply"`
	Units          float64          `json:"units"`
	Luvi           float64          `json:"luvi"`
}

func toDepthRow(d history.DepthRecord) depthRow {
	return depthRow{
		StartTime:      d.StartTime,
		EndTime:        d.EndTime,
		AssetDepth:     d.AssetDepth,
		RuneDepth:      d.RuneDepth,
		AssetPrice:     d.AssetPrice,
		AssetPriceUSD:  d.AssetPriceUSD,
		LiquidityUnits: d.LiquidityUnits,
		MembersCount:   d.MembersCount,
		SynthUnits:     d.SynthUnits,
		SynthSupply:    d.SynthSupply,
		Units:          d.Units,
		Luvi:           d.Luvi,
	}
}

func (r depthRow) record() history.DepthRecord {
	return history.DepthRecord{
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		AssetDepth:     r.AssetDepth,
		RuneDepth:      r.RuneDepth,
		AssetPrice:     r.AssetPrice,
		AssetPriceUSD:  r.AssetPriceUSD,
		LiquidityUnits: r.LiquidityUnits,
		MembersCount:   r.MembersCount,
		SynthUnits:     r.SynthUnits,
		SynthSupply:    r.SynthSupply,
		Units:          r.Units,
		Luvi:           r.Luvi,
	}
}

type runePoolRow struct {
	ID        *models.RecordID `json:"id,omitempty"`
	StartTime float64          `json:"start_time"`
	EndTime   float64          `json:"end_time"`
	Count     float64          `json:"count"`
	Units     float64          `json:"units"`
}

func toRunePoolRow(p history.RunePoolRecord) runePoolRow {
	return runePoolRow{StartTime: p.StartTime, EndTime: p.EndTime, Count: p.Count, Units: p.Units}
}

func (r runePoolRow) record() history.RunePoolRecord {
	return history.RunePoolRecord{StartTime: r.StartTime, EndTime: r.EndTime, Count: r.Count, Units: r.Units}
}
