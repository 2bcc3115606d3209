package domain

// SentenceStatus is the canonical procedural status of a penal sentence.
type SentenceStatus string

// Recognized penal sentence statuses. Firme and cumplida sentences are
// judicially settled and weigh heavier than in-process or appealed ones.
const (
	StatusFirme     SentenceStatus = "firme"
	StatusApelacion SentenceStatus = "apelacion"
	StatusProceso   SentenceStatus = "proceso"
	StatusCumplida  SentenceStatus = "cumplida"
)

// Settled reports whether the sentence is final (firme) or already served
// (cumplida), the high-severity statuses.
func (s SentenceStatus) Settled() bool {
	return s == StatusFirme || s == StatusCumplida
}

// PenalSentence is a canonical criminal-sentence record.
type PenalSentence struct {
	Type       string         `json:"type"`
	CaseNumber string         `json:"case_number"`
	Court      string         `json:"court"`
	Sentence   string         `json:"sentence"`
	Date       string         `json:"date"`
	Status     SentenceStatus `json:"status"`
	Source     string         `json:"source"`
}

// Civil sentence subtypes. Violencia familiar and alimentos are treated as
// red severity; the remaining subtypes as amber.
const (
	CivilViolenciaFamiliar = "violencia_familiar"
	CivilAlimentos         = "alimentos"
	CivilLaboral           = "laboral"
	CivilContractual       = "contractual"
)

// CivilSentence is a canonical civil-sentence record.
type CivilSentence struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	Source      string  `json:"source"`
}

// MiningRight is one REINFO registry entry linked to a candidate, used for
// conflict-of-interest screening.
type MiningRight struct {
	// Code is the registry identifier; distinct codes count separately.
	Code string `json:"code"`

	// Status is the registry status: Vigente, Suspendido or Excluido.
	Status string `json:"status"`
}

// CompanyIssues aggregates legal issues of companies linked to a candidate,
// bucketed by issue type.
type CompanyIssues struct {
	Penal      int     `json:"penal"`
	Laboral    int     `json:"laboral"`
	Ambiental  int     `json:"ambiental"`
	Consumidor int     `json:"consumidor"`
	FineAmount float64 `json:"fine_amount"`
}

// Total returns the total number of recorded issues across buckets.
func (c CompanyIssues) Total() int {
	return c.Penal + c.Laboral + c.Ambiental + c.Consumidor
}

// IncumbentPerformance holds government-performance scalars for candidates
// currently or recently holding office.
type IncumbentPerformance struct {
	// BudgetExecutionPct is the executed share of the assigned budget,
	// 0-100.
	BudgetExecutionPct float64 `json:"budget_execution_pct"`

	// ContraloriaReports counts adverse Contraloría audit reports.
	ContraloriaReports int `json:"contraloria_reports"`

	// PerformanceScore is the external management score, 0-100.
	PerformanceScore float64 `json:"performance_score"`
}

// VotingSummary condenses a congressional voting record. Penalty-relevant
// flags are kept separate from the raw counts so the penalty and the bonus
// remain distinct signed contributions.
type VotingSummary struct {
	InFavor int `json:"in_favor"`
	Against int `json:"against"`
	Abstain int `json:"abstain"`
	Absent  int `json:"absent"`

	// ProCrimeVotesInFavor counts votes in favor of pro-crime bills.
	ProCrimeVotesInFavor int `json:"pro_crime_votes_in_favor"`

	// AntiDemocraticVotesInFavor counts votes in favor of anti-democratic
	// bills.
	AntiDemocraticVotesInFavor int `json:"anti_democratic_votes_in_favor"`

	// ProCrimeVotesAgainst counts votes against pro-crime bills, rewarded
	// with a separate bonus.
	ProCrimeVotesAgainst int `json:"pro_crime_votes_against"`
}

// ProposalEvaluation holds the AI-assigned quality dimensions of a
// government plan, each on a 0-10 scale.
type ProposalEvaluation struct {
	Specificity float64 `json:"specificity"`
	Viability   float64 `json:"viability"`
	Impact      float64 `json:"impact"`
	Evidence    float64 `json:"evidence"`
}

// OverallQuality is the arithmetic mean of the four dimensions.
// The value is informational only and never feeds integrity.
func (p ProposalEvaluation) OverallQuality() float64 {
	return (p.Specificity + p.Viability + p.Impact + p.Evidence) / 4
}

// ExperienceRecord is a canonical work-experience entry. YearEnd defaults
// to 0 for unparsable or missing years; the zero sentinel marks an entry
// that is still current or undatable and is distinct from the trajectory
// nil sentinel.
type ExperienceRecord struct {
	Institution string `json:"institution"`
	Position    string `json:"position"`
	// Type is "publico" or "privado" after sector resolution.
	Type      string `json:"type"`
	YearStart int    `json:"year_start"`
	YearEnd   int    `json:"year_end"`
}

// EducationRecord is a canonical education entry.
type EducationRecord struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	// Level is the canonical education level, e.g. "universitario".
	Level     string `json:"level"`
	Completed bool   `json:"completed"`
}

// Canonical political-trajectory types.
const (
	TrajectoryCargoPartidario = "cargo_partidario"
	TrajectoryCargoElectivo   = "cargo_electivo"
	TrajectoryCandidatura     = "candidatura"
	TrajectoryCargoPublico    = "cargo_publico"
	TrajectoryAfiliacion      = "afiliacion"
)

// TrajectoryRecord is a canonical political-trajectory entry. Year fields
// are nil when unparsable or missing; unlike experience records the
// sentinel must stay nil because downstream duration logic distinguishes
// "unknown" from "ongoing".
type TrajectoryRecord struct {
	Organization string `json:"organization"`
	Role         string `json:"role"`
	Type         string `json:"type"`
	Result       string `json:"result"`
	YearStart    *int   `json:"year_start"`
	YearEnd      *int   `json:"year_end"`
}
