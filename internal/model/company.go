package model

// Industry is the market sector a startup reports during setup.
type Industry string

const (
	IndustrySaaS               Industry = "SaaS"
	IndustryEcommerce          Industry = "E-commerce"
	IndustryB2BServices        Industry = "B2B Services"
	IndustryFinTech            Industry = "FinTech"
	IndustryHealthTech         Industry = "HealthTech"
	IndustryEdTech             Industry = "EdTech"
	IndustryMarketplace        Industry = "Marketplace"
	IndustryDeepTech           Industry = "DeepTech"
	IndustryConsumerApp        Industry = "Consumer App"
	IndustryEnterpriseSoftware Industry = "Enterprise Software"
	IndustryOther              Industry = "Other"
)

// Industries lists every supported industry in display order.
var Industries = []Industry{
	IndustrySaaS,
	IndustryEcommerce,
	IndustryB2BServices,
	IndustryFinTech,
	IndustryHealthTech,
	IndustryEdTech,
	IndustryMarketplace,
	IndustryDeepTech,
	IndustryConsumerApp,
	IndustryEnterpriseSoftware,
	IndustryOther,
}

// FundingStage is the round a startup is raising or has most recently closed.
type FundingStage string

const (
	StagePreSeed  FundingStage = "Pre-Seed"
	StageSeed     FundingStage = "Seed"
	StageSeriesA  FundingStage = "Series A"
	StageSeriesB  FundingStage = "Series B"
	StageSeriesCP FundingStage = "Series C+"
)

// FundingStages lists every supported stage from earliest to latest.
var FundingStages = []FundingStage{
	StagePreSeed,
	StageSeed,
	StageSeriesA,
	StageSeriesB,
	StageSeriesCP,
}

// CompanyBasics holds the setup details shared across calculators.
type CompanyBasics struct {
	CompanyName    string   `json:"company_name" yaml:"company_name"`
	Industry       Industry `json:"industry" yaml:"industry"`
	FoundingDate   string   `json:"founding_date,omitempty" yaml:"founding_date,omitempty"`
	CashInBank     float64  `json:"cash_in_bank" yaml:"cash_in_bank"`
	MonthlyRevenue float64  `json:"monthly_revenue" yaml:"monthly_revenue"`
	TeamSize       int      `json:"team_size" yaml:"team_size"`
}
