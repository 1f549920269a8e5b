package models

import (
	"github.com/agrosight/agrosight/internal/agronomy"
	"github.com/agrosight/agrosight/internal/catalog"
)

// ValueRange is a numeric min/max pair.
type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Crop represents one entry of the crop database.
type Crop struct {
	Name               string     `json:"name"`
	Seasons            []string   `json:"seasons"`
	WaterRequirement   string     `json:"water_requirement"`
	TemperatureRangeC  ValueRange `json:"temperature_range_c"`
	RainfallRangeMM    ValueRange `json:"rainfall_range_mm"`
	SoilTypes          []string   `json:"soil_types"`
	GrowthDurationDays int        `json:"growth_duration_days"`
	YieldPerAcre       string     `json:"yield_per_acre"`
	Investment         string     `json:"investment"`
}

// CropList is the response for the crop database listing.
type CropList struct {
	Crops         []Crop `json:"crops"`
	Total         int    `json:"total"`
	CurrentSeason string `json:"current_season,omitempty"`
}

// NewCrop maps a catalog crop to its API representation.
func NewCrop(crop catalog.Crop) Crop {
	seasons := make([]string, 0, len(crop.Seasons))
	for _, s := range crop.Seasons {
		seasons = append(seasons, string(s))
	}

	return Crop{
		Name:               crop.Name,
		Seasons:            seasons,
		WaterRequirement:   string(crop.WaterRequirement),
		TemperatureRangeC:  ValueRange{Min: crop.TemperatureRange.Min, Max: crop.TemperatureRange.Max},
		RainfallRangeMM:    ValueRange{Min: crop.RainfallRange.Min, Max: crop.RainfallRange.Max},
		SoilTypes:          crop.SoilTypes,
		GrowthDurationDays: crop.GrowthDuration,
		YieldPerAcre:       crop.YieldPerAcre,
		Investment:         crop.Investment,
	}
}

// NewCropList maps catalog crops to the listing response.
func NewCropList(crops []catalog.Crop) CropList {
	out := CropList{
		Crops: make([]Crop, 0, len(crops)),
		Total: len(crops),
	}
	for _, crop := range crops {
		out.Crops = append(out.Crops, NewCrop(crop))
	}
	return out
}

// GrowthStage is one phase of a growth plan.
type GrowthStage struct {
	Number       int      `json:"stage"`
	Name         string   `json:"name"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	DurationDays int      `json:"duration_days"`
	Activities   []string `json:"activities"`
}

// CostItem is one line of the investment breakdown.
type CostItem struct {
	Item   string `json:"item"`
	Amount int    `json:"amount_inr"`
}

// InvestmentDetails summarizes cost and return figures.
type InvestmentDetails struct {
	InitialInvestment string     `json:"initial_investment"`
	ExpectedYield     string     `json:"expected_yield"`
	WaterRequirement  string     `json:"water_requirement"`
	Breakdown         []CostItem `json:"breakdown,omitempty"`
	EstimatedRevenue  int        `json:"estimated_revenue_inr,omitempty"`
}

// GrowthPlan is a staged cultivation calendar for a crop.
type GrowthPlan struct {
	Crop              string            `json:"crop"`
	TotalDurationDays int               `json:"total_duration_days"`
	PlantingDate      string            `json:"planting_date"`
	ExpectedHarvest   string            `json:"expected_harvest"`
	Stages            []GrowthStage     `json:"stages"`
	Investment        InvestmentDetails `json:"investment"`
}

// planDateLayout formats plan dates as calendar days.
const planDateLayout = "2006-01-02"

// NewGrowthPlan maps a generated plan to its API representation.
func NewGrowthPlan(plan *agronomy.GrowthPlan) GrowthPlan {
	stages := make([]GrowthStage, 0, len(plan.Stages))
	for _, stage := range plan.Stages {
		stages = append(stages, GrowthStage{
			Number:       stage.Number,
			Name:         stage.Name,
			StartDate:    stage.StartDate.Format(planDateLayout),
			EndDate:      stage.EndDate.Format(planDateLayout),
			DurationDays: stage.DurationDays,
			Activities:   stage.Activities,
		})
	}

	breakdown := make([]CostItem, 0, len(plan.Investment.Breakdown))
	for _, item := range plan.Investment.Breakdown {
		breakdown = append(breakdown, CostItem{Item: item.Item, Amount: item.Amount})
	}

	return GrowthPlan{
		Crop:              plan.Crop,
		TotalDurationDays: plan.TotalDurationDays,
		PlantingDate:      plan.PlantingDate.Format(planDateLayout),
		ExpectedHarvest:   plan.ExpectedHarvest.Format(planDateLayout),
		Stages:            stages,
		Investment: InvestmentDetails{
			InitialInvestment: plan.Investment.InitialInvestment,
			ExpectedYield:     plan.Investment.ExpectedYield,
			WaterRequirement:  string(plan.Investment.WaterRequirement),
			Breakdown:         breakdown,
			EstimatedRevenue:  plan.Investment.EstimatedRevenue,
		},
	}
}
