package units

import (
	"fmt"
	"time"

	"github.com/votolimpio/scoring-engine/internal/domain"
	"github.com/votolimpio/scoring-engine/internal/normalize"
)

// AggregationConfig holds the cross-unit aggregation constants.
type AggregationConfig struct {
	// IntegrityBase is the starting integrity score penalties are
	// subtracted from.
	IntegrityBase float64 `yaml:"integrity_base" json:"integrity_base" validate:"gt=0,max=100"`

	// CompetenceDeltaBound bounds the signed incumbent budget-execution
	// competence adjustment.
	CompetenceDeltaBound float64 `yaml:"competence_delta_bound" json:"competence_delta_bound" validate:"min=0,max=50"`
}

// DefaultAggregationConfig returns the production defaults: integrity
// starts at 100, the incumbent competence delta stays within +-10.
func DefaultAggregationConfig() AggregationConfig {
	return AggregationConfig{
		IntegrityBase:        100,
		CompetenceDeltaBound: 10,
	}
}

// SuiteConfig bundles every unit configuration. It is the units section of
// the scoring configuration file; all historical threshold disagreements
// are settled here instead of in code.
type SuiteConfig struct {
	Aggregation  AggregationConfig  `yaml:"aggregation" json:"aggregation"`
	Penal        PenalConfig        `yaml:"penal" json:"penal"`
	Civil        CivilConfig        `yaml:"civil" json:"civil"`
	Resignation  ResignationConfig  `yaml:"resignation" json:"resignation"`
	Reinfo       ReinfoConfig       `yaml:"reinfo" json:"reinfo"`
	Company      CompanyConfig      `yaml:"company" json:"company"`
	Incumbent    IncumbentConfig    `yaml:"incumbent" json:"incumbent"`
	Voting       VotingConfig       `yaml:"voting" json:"voting"`
	Competence   CompetenceConfig   `yaml:"competence" json:"competence"`
	Transparency TransparencyConfig `yaml:"transparency" json:"transparency"`
	Confidence   ConfidenceConfig   `yaml:"confidence" json:"confidence"`
	Composite    CompositeConfig    `yaml:"composite" json:"composite"`
	Proposal     ProposalConfig     `yaml:"proposal" json:"proposal"`
}

// DefaultSuiteConfig returns the full set of production defaults.
func DefaultSuiteConfig() SuiteConfig {
	return SuiteConfig{
		Aggregation:  DefaultAggregationConfig(),
		Penal:        DefaultPenalConfig(),
		Civil:        DefaultCivilConfig(),
		Resignation:  DefaultResignationConfig(),
		Reinfo:       DefaultReinfoConfig(),
		Company:      DefaultCompanyConfig(),
		Incumbent:    DefaultIncumbentConfig(),
		Voting:       DefaultVotingConfig(),
		Competence:   DefaultCompetenceConfig(),
		Transparency: DefaultTransparencyConfig(),
		Confidence:   DefaultConfidenceConfig(),
		Composite:    DefaultCompositeConfig(),
		Proposal:     DefaultProposalConfig(),
	}
}

// Suite is the assembled calculator set. It is stateless after
// construction and safe for concurrent use across candidates.
type Suite struct {
	aggregation  AggregationConfig
	penal        *PenalUnit
	civil        *CivilUnit
	resignation  *ResignationUnit
	reinfo       *ReinfoUnit
	company      *CompanyUnit
	incumbent    *IncumbentUnit
	voting       *VotingUnit
	competence   *CompetenceUnit
	transparency *TransparencyUnit
	confidence   *ConfidenceUnit
	composite    *CompositeUnit
	proposal     *ProposalUnit
}

// NewSuite builds every unit from the given configuration. Any invalid
// unit configuration fails construction; a half-configured suite must
// never score a batch.
func NewSuite(config SuiteConfig) (*Suite, error) {
	if err := validate.Struct(config.Aggregation); err != nil {
		return nil, fmt.Errorf("aggregation configuration validation failed: %w", err)
	}

	penal, err := NewPenalUnit("penal", config.Penal)
	if err != nil {
		return nil, err
	}
	civil, err := NewCivilUnit("civil", config.Civil)
	if err != nil {
		return nil, err
	}
	resignation, err := NewResignationUnit("resignation", config.Resignation)
	if err != nil {
		return nil, err
	}
	reinfo, err := NewReinfoUnit("reinfo", config.Reinfo)
	if err != nil {
		return nil, err
	}
	company, err := NewCompanyUnit("company", config.Company)
	if err != nil {
		return nil, err
	}
	incumbent, err := NewIncumbentUnit("incumbent", config.Incumbent)
	if err != nil {
		return nil, err
	}
	voting, err := NewVotingUnit("voting", config.Voting)
	if err != nil {
		return nil, err
	}
	competence, err := NewCompetenceUnit("competence", config.Competence)
	if err != nil {
		return nil, err
	}
	transparency, err := NewTransparencyUnit("transparency", config.Transparency)
	if err != nil {
		return nil, err
	}
	confidence, err := NewConfidenceUnit("confidence", config.Confidence)
	if err != nil {
		return nil, err
	}
	composite, err := NewCompositeUnit("composite", config.Composite)
	if err != nil {
		return nil, err
	}
	proposal, err := NewProposalUnit("proposal", config.Proposal)
	if err != nil {
		return nil, err
	}

	return &Suite{
		aggregation:  config.Aggregation,
		penal:        penal,
		civil:        civil,
		resignation:  resignation,
		reinfo:       reinfo,
		company:      company,
		incumbent:    incumbent,
		voting:       voting,
		competence:   competence,
		transparency: transparency,
		confidence:   confidence,
		composite:    composite,
		proposal:     proposal,
	}, nil
}

// Result is one candidate's complete evaluation: the persisted score, the
// audit breakdown, the pre-penalty baseline and the informational proposal
// quality.
type Result struct {
	Score           domain.Score
	Breakdown       domain.ScoreBreakdown
	Baseline        domain.BaselineSnapshot
	ProposalQuality float64
}

// Evaluate runs the full normalize-compute-aggregate transform for one
// candidate. It is pure: the same candidate, reference year and run
// identity always produce the same result. A malformed category blob
// normalizes to no records and degrades only that category to neutral.
func (s *Suite) Evaluate(c domain.Candidate, referenceYear int, runID string, now time.Time) Result {
	education := normalize.Education(c.Raw.Education)
	experience := normalize.Experience(c.Raw.Experience)
	trajectory := normalize.Trajectory(c.Raw.Trajectory)
	penal := normalize.PenalSentences(c.Raw.Penal)
	civil := normalize.CivilSentences(c.Raw.Civil)
	rights := normalize.MiningRights(c.Raw.MiningRights)

	competenceBase := s.competence.Compute(education, experience, trajectory, referenceYear)
	competence := domain.Clamp0100(competenceBase + s.incumbent.CompetenceDelta(c.Incumbent, s.aggregation.CompetenceDeltaBound))

	civilItems, _ := s.civil.Compute(civil)
	reinfoPenalty, _ := s.reinfo.Compute(rights)
	votingPenalty, votingBonus := s.voting.Compute(c.Voting)

	breakdown := domain.ScoreBreakdown{
		CandidateID:        c.ID,
		IntegrityBase:      s.aggregation.IntegrityBase,
		PenalPenalty:       s.penal.Compute(penal),
		CivilPenalties:     civilItems,
		ResignationPenalty: s.resignation.Compute(c.Resignations),
		ReinfoPenalty:      reinfoPenalty,
		CompanyPenalty:     s.company.Compute(c.Company),
		IncumbentPenalty:   s.incumbent.Compute(c.Incumbent),
		VotingPenalty:      votingPenalty,
		VotingBonus:        votingBonus,
	}

	integrity := breakdown.IntegrityTotal()
	transparency := s.transparency.Compute(c.Docs)
	confidence := s.confidence.Compute(ConfidenceInputs{
		Candidate:  c,
		Education:  education,
		Experience: experience,
		Trajectory: trajectory,
		Penal:      penal,
		Civil:      civil,
	})

	balanced, merit, integrityFirst := s.composite.Compute(competence, integrity, transparency)

	return Result{
		Score: domain.Score{
			CandidateID:    c.ID,
			Competence:     competence,
			Integrity:      integrity,
			Transparency:   transparency,
			Confidence:     confidence,
			Balanced:       balanced,
			Merit:          merit,
			IntegrityFirst: integrityFirst,
			ComputedAt:     now,
			RunID:          runID,
		},
		Breakdown: breakdown,
		Baseline: domain.BaselineSnapshot{
			CandidateID: c.ID,
			Competence:  competence,
			Integrity:   s.aggregation.IntegrityBase,
			CapturedAt:  now,
			RunID:       runID,
		},
		ProposalQuality: s.proposal.Compute(c.Proposals),
	}
}

// EvaluateFromBaseline replays every penalty category against a trusted
// pre-penalty baseline instead of the current (already penalized) score.
// Penalty application is not commutative against a penalized score, so
// incremental extension with a new category must always go through here.
func (s *Suite) EvaluateFromBaseline(
	c domain.Candidate,
	baseline domain.BaselineSnapshot,
	runID string,
	now time.Time,
) Result {
	penal := normalize.PenalSentences(c.Raw.Penal)
	civil := normalize.CivilSentences(c.Raw.Civil)
	rights := normalize.MiningRights(c.Raw.MiningRights)

	civilItems, _ := s.civil.Compute(civil)
	reinfoPenalty, _ := s.reinfo.Compute(rights)
	votingPenalty, votingBonus := s.voting.Compute(c.Voting)

	breakdown := domain.ScoreBreakdown{
		CandidateID:        c.ID,
		IntegrityBase:      baseline.Integrity,
		PenalPenalty:       s.penal.Compute(penal),
		CivilPenalties:     civilItems,
		ResignationPenalty: s.resignation.Compute(c.Resignations),
		ReinfoPenalty:      reinfoPenalty,
		CompanyPenalty:     s.company.Compute(c.Company),
		IncumbentPenalty:   s.incumbent.Compute(c.Incumbent),
		VotingPenalty:      votingPenalty,
		VotingBonus:        votingBonus,
	}

	integrity := breakdown.IntegrityTotal()
	transparency := s.transparency.Compute(c.Docs)
	competence := domain.Clamp0100(baseline.Competence)
	balanced, merit, integrityFirst := s.composite.Compute(competence, integrity, transparency)

	confidence := s.confidence.Compute(ConfidenceInputs{
		Candidate:  c,
		Education:  normalize.Education(c.Raw.Education),
		Experience: normalize.Experience(c.Raw.Experience),
		Trajectory: normalize.Trajectory(c.Raw.Trajectory),
		Penal:      penal,
		Civil:      civil,
	})

	return Result{
		Score: domain.Score{
			CandidateID:    c.ID,
			Competence:     competence,
			Integrity:      integrity,
			Transparency:   transparency,
			Confidence:     confidence,
			Balanced:       balanced,
			Merit:          merit,
			IntegrityFirst: integrityFirst,
			ComputedAt:     now,
			RunID:          runID,
		},
		Breakdown:       breakdown,
		Baseline:        baseline,
		ProposalQuality: s.proposal.Compute(c.Proposals),
	}
}
