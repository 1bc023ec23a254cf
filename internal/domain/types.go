package domain

// Food categories the analyzer may assign.
const (
	CategoryCookedMeals = "Cooked Meals"
	CategoryRawFood     = "Raw Food"
	CategoryBeverages   = "Beverages"
	CategorySnacks      = "Snacks"
	CategoryDesserts    = "Desserts"
)

// Freshness levels.
const (
	FreshnessFresh = "Fresh"
	FreshnessGood  = "Good"
	FreshnessFair  = "Fair"
)

// Storage recommendations.
const (
	StorageHot  = "Hot"
	StorageCold = "Cold"
	StorageDry  = "Dry"
)

// Product types.
const (
	ProductTypeCooked = "cooked"
	ProductTypePacked = "packed"
)

// FoodAnalysis is the canonical analysis record returned to callers. A value
// may come from the remote model, the heuristic classifier, or the static
// mock; callers cannot tell which.
type FoodAnalysis struct {
	FoodCategory          string   `json:"foodCategory"`
	ItemName              string   `json:"itemName"`
	Quantity              int      `json:"quantity"`
	QualityScore          float64  `json:"qualityScore"`
	Freshness             string   `json:"freshness"`
	StorageRecommendation string   `json:"storageRecommendation"`
	Confidence            float64  `json:"confidence"`
	DetectedItems         []string `json:"detectedItems"`
	ProductType           string   `json:"productType,omitempty"`
	ExpiryDateFromPackage *string  `json:"expiryDateFromPackage"`
}

// AIVerdict is the intermediate result of the AI-generated-image check. It is
// consumed immediately to decide whether to abort the pipeline.
type AIVerdict struct {
	IsAIGenerated bool    `json:"isAiGenerated"`
	Confidence    float64 `json:"confidence"`
	Reason        string  `json:"reason"`
}

// Detection is a single object-detector hit used by the heuristic classifier.
type Detection struct {
	Label      string
	Confidence float64
	Box        [4]float64
}

func ValidCategory(s string) bool {
	switch s {
	case CategoryCookedMeals, CategoryRawFood, CategoryBeverages, CategorySnacks, CategoryDesserts:
		return true
	}
	return false
}

func ValidFreshness(s string) bool {
	return s == FreshnessFresh || s == FreshnessGood || s == FreshnessFair
}

func ValidStorage(s string) bool {
	return s == StorageHot || s == StorageCold || s == StorageDry
}

func ValidProductType(s string) bool {
	return s == ProductTypeCooked || s == ProductTypePacked
}

// MockAnalysis returns the fixed degraded-mode result. The web layer
// substitutes it whenever no analyzer is configured or an unexpected failure
// occurs, so /predict always answers with a well-formed record.
func MockAnalysis() *FoodAnalysis {
	return &FoodAnalysis{
		FoodCategory:          CategoryCookedMeals,
		ItemName:              "Vegetable Curry with Rice",
		Quantity:              15,
		QualityScore:          0.90,
		Freshness:             FreshnessFresh,
		StorageRecommendation: StorageHot,
		Confidence:            0.90,
		DetectedItems:         []string{"rice", "curry", "vegetables"},
		ProductType:           ProductTypeCooked,
	}
}
