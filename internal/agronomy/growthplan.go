package agronomy

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agrosight/agrosight/internal/catalog"
)

// Stage is one phase of a growth plan. Date ranges are contiguous: each
// stage starts the day after the previous one ends.
type Stage struct {
	Number       int
	Name         string
	StartDate    time.Time
	EndDate      time.Time
	DurationDays int
	Activities   []string
}

// CostItem is one line of the decorative investment breakdown.
type CostItem struct {
	Item   string
	Amount int // rupees
}

// InvestmentDetails summarizes cost and return figures for a plan. The
// breakdown and revenue estimate are illustrative, not derived from the
// scoring engine.
type InvestmentDetails struct {
	InitialInvestment string
	ExpectedYield     string
	WaterRequirement  catalog.WaterRequirement
	Breakdown         []CostItem
	EstimatedRevenue  int // rupees
}

// GrowthPlan is a staged cultivation calendar for a crop.
type GrowthPlan struct {
	Crop              string
	TotalDurationDays int
	PlantingDate      time.Time
	ExpectedHarvest   time.Time
	Stages            []Stage
	Investment        InvestmentDetails
}

// Planner generates growth plans. The pseudo-random source only feeds the
// decorative investment figures; stage structure is deterministic.
type Planner struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPlanner creates a planner. If rng is nil, a time-seeded source is used.
func NewPlanner(rng *rand.Rand) *Planner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Planner{rng: rng}
}

// Duration buckets for stage templates.
const (
	shortDurationMax  = 120
	mediumDurationMax = 200
)

var (
	shortStageLead  = [4]int{15, 30, 30, 30}
	mediumStageLead = [4]int{20, 45, 45, 45}
	longStageLead   = [4]int{30, 90, 90, 90}

	standardStageNames = [5]string{
		"Germination & Establishment",
		"Vegetative Growth",
		"Flowering",
		"Fruit/Grain Development",
		"Harvest",
	}
	longStageNames = [5]string{
		"Germination & Establishment",
		"Vegetative Growth",
		"Flowering/Reproductive",
		"Maturation",
		"Harvest",
	}
)

// GeneratePlan produces a five-stage growth plan for the crop, with
// planting assumed to start at now. Stage durations always sum to the
// crop's growth duration.
func (p *Planner) GeneratePlan(crop catalog.Crop, now time.Time) *GrowthPlan {
	duration := crop.GrowthDuration

	var (
		lead  [4]int
		names [5]string
	)
	switch {
	case duration <= shortDurationMax:
		lead, names = shortStageLead, standardStageNames
	case duration <= mediumDurationMax:
		lead, names = mediumStageLead, standardStageNames
	default:
		lead, names = longStageLead, longStageNames
	}

	periods := stagePeriods(lead, duration)

	planting := now.Truncate(24 * time.Hour)
	stages := make([]Stage, 0, len(periods))
	offset := 0
	for i, period := range periods {
		start := planting.AddDate(0, 0, offset)
		end := planting.AddDate(0, 0, offset+period-1)
		stages = append(stages, Stage{
			Number:       i + 1,
			Name:         names[i],
			StartDate:    start,
			EndDate:      end,
			DurationDays: period,
			Activities:   stageActivities(crop.Name, i),
		})
		offset += period
	}

	return &GrowthPlan{
		Crop:              crop.Name,
		TotalDurationDays: duration,
		PlantingDate:      planting,
		ExpectedHarvest:   stages[len(stages)-1].EndDate,
		Stages:            stages,
		Investment:        p.investmentDetails(crop),
	}
}

// stagePeriods derives the five stage lengths for the duration. When the
// duration exceeds the template by at least a day, the template is used
// as-is with the remainder as the harvest stage; shorter crops shrink the
// leading stages proportionally so the sum stays exact and every stage
// keeps at least one day.
func stagePeriods(lead [4]int, duration int) [5]int {
	leadSum := 0
	for _, d := range lead {
		leadSum += d
	}

	var periods [5]int
	if duration > leadSum {
		copy(periods[:4], lead[:])
		periods[4] = duration - leadSum
		return periods
	}

	used := 0
	for i, d := range lead {
		scaled := d * (duration - 1) / leadSum
		if scaled < 1 {
			scaled = 1
		}
		periods[i] = scaled
		used += scaled
	}
	periods[4] = duration - used
	if periods[4] < 1 {
		periods[4] = 1
	}
	return periods
}

// baseStageActivities is the activity checklist per stage index.
var baseStageActivities = [5][]string{
	{"Land preparation", "Seed treatment", "Sowing/Planting", "Initial irrigation"},
	{"Regular irrigation", "Weed management", "First fertilizer application", "Pest monitoring"},
	{"Flowering support", "Pollination management", "Disease control", "Second fertilizer application"},
	{"Fruit/grain development monitoring", "Water management", "Final fertilizer application", "Harvest preparation"},
	{"Harvesting", "Post-harvest handling", "Storage preparation", "Marketing"},
}

// cropStageExtras maps crop name and stage index to additional activities.
var cropStageExtras = map[string]map[int][]string{
	"Rice":   {1: {"Transplanting", "Water level maintenance"}},
	"Cotton": {2: {"Bollworm monitoring", "Growth regulator application"}},
	"Tomato": {1: {"Staking/support", "Regular pruning"}},
	"Onion":  {1: {"Staking/support", "Regular pruning"}},
}

// stageActivities returns the checklist for a crop's stage.
func stageActivities(cropName string, stageIndex int) []string {
	activities := append([]string(nil), baseStageActivities[stageIndex]...)
	if extras, ok := cropStageExtras[cropName][stageIndex]; ok {
		activities = append(activities, extras...)
	}
	return activities
}

// investmentShares split the crop's documented investment midpoint into
// rough cost categories.
var investmentShares = []struct {
	item  string
	share float64
}{
	{"Seeds & planting material", 0.15},
	{"Fertilizer & nutrients", 0.25},
	{"Labour", 0.30},
	{"Irrigation", 0.15},
	{"Plant protection & misc", 0.15},
}

// investmentDetails builds the decorative cost breakdown and profit
// estimate from the crop's documented investment range.
func (p *Planner) investmentDetails(crop catalog.Crop) InvestmentDetails {
	details := InvestmentDetails{
		InitialInvestment: crop.Investment,
		ExpectedYield:     crop.YieldPerAcre,
		WaterRequirement:  crop.WaterRequirement,
	}

	mid := investmentMidpoint(crop.Investment)
	if mid == 0 {
		return details
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, s := range investmentShares {
		jitter := 0.9 + p.rng.Float64()*0.2
		details.Breakdown = append(details.Breakdown, CostItem{
			Item:   s.item,
			Amount: int(math.Round(float64(mid) * s.share * jitter)),
		})
	}
	details.EstimatedRevenue = int(math.Round(float64(mid) * (1.4 + p.rng.Float64()*0.4)))

	return details
}

// investmentMidpoint parses a display string like "₹25,000-30,000 per acre"
// and returns the midpoint in rupees, or 0 if it cannot be parsed.
func investmentMidpoint(display string) int {
	display = strings.TrimPrefix(display, "₹")
	if i := strings.Index(display, " per"); i >= 0 {
		display = display[:i]
	}

	parts := strings.Split(display, "-")
	var values []int
	for _, part := range parts {
		digits := strings.ReplaceAll(strings.TrimSpace(part), ",", "")
		v, err := strconv.Atoi(digits)
		if err != nil {
			return 0
		}
		values = append(values, v)
	}

	switch len(values) {
	case 1:
		return values[0]
	case 2:
		return (values[0] + values[1]) / 2
	default:
		return 0
	}
}
