// Package domain contains pure, dependency-free domain models and types
// for the candidate scoring engine.
package domain

import (
	"encoding/json"
	"time"
)

// Cargo identifies the ballot position a candidate is registered for.
type Cargo string

// Ballot positions recognized by the engine.
const (
	CargoPresidente       Cargo = "presidente"
	CargoVicepresidente   Cargo = "vicepresidente"
	CargoSenador          Cargo = "senador"
	CargoDiputado         Cargo = "diputado"
	CargoParlamentoAndino Cargo = "parlamento_andino"
)

// Valid reports whether the cargo is one of the recognized ballot positions.
func (c Cargo) Valid() bool {
	switch c {
	case CargoPresidente, CargoVicepresidente, CargoSenador, CargoDiputado, CargoParlamentoAndino:
		return true
	}
	return false
}

// RawCategories holds the per-source JSON blobs written by external
// ingestion. The engine only reads these; reconciliation may copy whole
// arrays between sibling records but never shrinks existing data.
type RawCategories struct {
	// Education holds raw education entries in any documented synonym shape.
	Education json.RawMessage `json:"education,omitempty"`

	// Experience holds raw work-experience entries.
	Experience json.RawMessage `json:"experience,omitempty"`

	// Trajectory holds raw political-trajectory entries.
	Trajectory json.RawMessage `json:"trajectory,omitempty"`

	// Penal holds raw criminal-sentence records.
	Penal json.RawMessage `json:"penal,omitempty"`

	// Civil holds raw civil-sentence records.
	Civil json.RawMessage `json:"civil,omitempty"`

	// MiningRights holds raw REINFO mining-registry entries linked to the
	// candidate.
	MiningRights json.RawMessage `json:"mining_rights,omitempty"`
}

// HasPenal reports whether the penal category carries any data.
func (rc RawCategories) HasPenal() bool { return len(rc.Penal) > 0 && string(rc.Penal) != "null" }

// HasCivil reports whether the civil category carries any data.
func (rc RawCategories) HasCivil() bool { return len(rc.Civil) > 0 && string(rc.Civil) != "null" }

// TransparencyDocs records which disclosure documents the candidate filed.
// Each present component contributes equally to the transparency score.
type TransparencyDocs struct {
	AssetsDeclaration bool `json:"assets_declaration"`
	IncomeDeclaration bool `json:"income_declaration"`
	HojaDeVida        bool `json:"hoja_de_vida"`
	CV                bool `json:"cv"`
	Photo             bool `json:"photo"`
}

// Candidate is one ballot registration of a natural person. The same
// person may exist as multiple Candidate rows, one per cargo; those rows
// are sibling records and are reconciled by full name.
type Candidate struct {
	// ID uniquely identifies this candidate row.
	ID string `json:"id"`

	// FullName is the registered full name, used for sibling grouping.
	FullName string `json:"full_name"`

	// Cargo is the ballot position this row was registered for.
	Cargo Cargo `json:"cargo"`

	// PartyID references the political party the candidate runs with.
	PartyID string `json:"party_id"`

	// Raw contains the per-source category blobs produced by ingestion.
	Raw RawCategories `json:"raw"`

	// Resignations counts documented party resignations.
	Resignations int `json:"resignations"`

	// Docs records which disclosure documents were filed.
	Docs TransparencyDocs `json:"docs"`

	// Incumbent holds performance scalars when the candidate currently or
	// recently held office; nil otherwise.
	Incumbent *IncumbentPerformance `json:"incumbent,omitempty"`

	// Voting summarizes the congressional voting record, nil when the
	// candidate never served in congress.
	Voting *VotingSummary `json:"voting,omitempty"`

	// Company aggregates legal issues of companies linked to the candidate,
	// nil when no companies are linked.
	Company *CompanyIssues `json:"company,omitempty"`

	// Proposals holds the AI evaluation of government-plan proposals,
	// nil when no plan was filed or not yet evaluated.
	Proposals *ProposalEvaluation `json:"proposals,omitempty"`

	// UpdatedAt is the last ingestion write, informational only.
	UpdatedAt time.Time `json:"updated_at"`
}
