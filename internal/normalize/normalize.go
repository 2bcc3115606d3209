package normalize

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// decodeEntries unwraps a raw category blob into generic entries. Sources
// disagree on whether a category is an array or a single object; both are
// accepted. Anything else degrades to no entries.
func decodeEntries(raw json.RawMessage) []map[string]any {
	if len(raw) == 0 {
		return nil
	}

	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err == nil {
		return entries
	}

	var single map[string]any
	if err := json.Unmarshal(raw, &single); err == nil && single != nil {
		return []map[string]any{single}
	}

	return nil
}

// stringField resolves a canonical string field against an ordered synonym
// list, first match wins. Numeric source values are rendered as strings so
// case numbers like 123 survive shape drift.
func stringField(entry map[string]any, synonyms ...string) string {
	for _, key := range synonyms {
		v, ok := entry[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			if trimmed := strings.TrimSpace(val); trimmed != "" {
				return trimmed
			}
		case float64:
			return strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(val)
		}
	}
	return ""
}

// numberField resolves a canonical numeric field against a synonym list.
func numberField(entry map[string]any, synonyms ...string) (float64, bool) {
	for _, key := range synonyms {
		v, ok := entry[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case float64:
			return val, true
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

// boolField resolves a canonical boolean field against a synonym list.
func boolField(entry map[string]any, synonyms ...string) (bool, bool) {
	for _, key := range synonyms {
		v, ok := entry[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case bool:
			return val, true
		case string:
			switch Canon(val) {
			case "true", "si", "s", "1":
				return true, true
			case "false", "no", "n", "0":
				return false, true
			}
		case float64:
			return val != 0, true
		}
	}
	return false, false
}

// parseYear extracts a four-digit year from a raw value. Sources carry
// years as numbers, plain strings, or date strings like "2010-05-01".
func parseYear(entry map[string]any, synonyms ...string) (int, bool) {
	for _, key := range synonyms {
		v, ok := entry[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case float64:
			year := int(val)
			if year > 0 {
				return year, true
			}
		case string:
			s := strings.TrimSpace(val)
			if len(s) >= 4 {
				if year, err := strconv.Atoi(s[:4]); err == nil && year > 0 {
					return year, true
				}
			}
		}
	}
	return 0, false
}

// Experience normalizes raw work-experience entries. Unparsable or missing
// years default to 0; the zero sentinel is load-bearing for duration logic
// and must not be confused with the trajectory nil sentinel.
func Experience(raw json.RawMessage) []domain.ExperienceRecord {
	entries := decodeEntries(raw)
	if len(entries) == 0 {
		return nil
	}

	records := make([]domain.ExperienceRecord, 0, len(entries))
	for _, entry := range entries {
		institution := stringField(entry, "organization", "institution", "centro_trabajo", "empresa", "entidad")
		yearStart, _ := parseYear(entry, "start_year", "year_start", "anio_inicio", "ano_inicio", "desde")
		yearEnd, _ := parseYear(entry, "end_year", "year_end", "anio_fin", "ano_fin", "hasta")

		records = append(records, domain.ExperienceRecord{
			Institution: institution,
			Position:    stringField(entry, "position", "cargo", "puesto", "ocupacion"),
			Type:        ResolveSector(stringField(entry, "sector"), stringField(entry, "type", "tipo"), institution),
			YearStart:   yearStart,
			YearEnd:     yearEnd,
		})
	}
	return records
}

// Education normalizes raw education entries.
func Education(raw json.RawMessage) []domain.EducationRecord {
	entries := decodeEntries(raw)
	if len(entries) == 0 {
		return nil
	}

	records := make([]domain.EducationRecord, 0, len(entries))
	for _, entry := range entries {
		completed, ok := boolField(entry, "completed", "concluido", "concluida", "finalizado")
		if !ok {
			// Sources that only list finished studies omit the flag.
			completed = true
		}

		records = append(records, domain.EducationRecord{
			Institution: stringField(entry, "institution", "centro_estudios", "universidad", "organization"),
			Degree:      stringField(entry, "degree", "titulo", "carrera", "especialidad"),
			Level:       canonicalEducationLevel(stringField(entry, "level", "nivel", "grado")),
			Completed:   completed,
		})
	}
	return records
}

// canonicalEducationLevel maps free-form level strings onto the fixed
// ladder used by the competence calculator.
func canonicalEducationLevel(level string) string {
	c := Canon(level)
	switch {
	case strings.Contains(c, "doctor"):
		return "doctorado"
	case strings.Contains(c, "maestr"), strings.Contains(c, "magister"), strings.Contains(c, "master"):
		return "maestria"
	case strings.Contains(c, "titul"):
		return "titulado"
	case strings.Contains(c, "universitari"), strings.Contains(c, "bachiller"), strings.Contains(c, "superior universitaria"):
		return "universitario"
	case strings.Contains(c, "tecnic"), strings.Contains(c, "instituto"):
		return "tecnico"
	case strings.Contains(c, "secundaria"):
		return "secundaria"
	case strings.Contains(c, "primaria"):
		return "primaria"
	default:
		return "sin_nivel"
	}
}

// trajectoryTypeSynonyms maps source trajectory types onto the canonical
// set. Lookups use the canon form; unmatched types default to afiliacion.
var trajectoryTypeSynonyms = map[string]string{
	"partidario":       domain.TrajectoryCargoPartidario,
	"cargo_partidario": domain.TrajectoryCargoPartidario,
	"dirigencial":      domain.TrajectoryCargoPartidario,
	"eleccion":         domain.TrajectoryCargoElectivo,
	"cargo_electivo":   domain.TrajectoryCargoElectivo,
	"electivo":         domain.TrajectoryCargoElectivo,
	"candidatura":      domain.TrajectoryCandidatura,
	"candidato":        domain.TrajectoryCandidatura,
	"cargo_publico":    domain.TrajectoryCargoPublico,
	"funcionario":      domain.TrajectoryCargoPublico,
	"afiliacion":       domain.TrajectoryAfiliacion,
	"militancia":       domain.TrajectoryAfiliacion,
}

// Trajectory normalizes raw political-trajectory entries. Years stay nil
// when unparsable or missing so downstream duration logic can tell
// "unknown" apart from the experience zero sentinel. A missing result is
// synthesized as "Electo" when the source marked the entry elected.
func Trajectory(raw json.RawMessage) []domain.TrajectoryRecord {
	entries := decodeEntries(raw)
	if len(entries) == 0 {
		return nil
	}

	records := make([]domain.TrajectoryRecord, 0, len(entries))
	for _, entry := range entries {
		typ := domain.TrajectoryAfiliacion
		if resolved, ok := trajectoryTypeSynonyms[Canon(stringField(entry, "type", "tipo"))]; ok {
			typ = resolved
		}

		result := stringField(entry, "result", "resultado")
		if result == "" {
			if elected, ok := boolField(entry, "is_elected", "electo", "elegido"); ok && elected {
				result = "Electo"
			}
		}

		var yearStart, yearEnd *int
		if y, ok := parseYear(entry, "start_year", "year_start", "anio_inicio", "ano_inicio", "desde"); ok {
			yearStart = &y
		}
		if y, ok := parseYear(entry, "end_year", "year_end", "anio_fin", "ano_fin", "hasta"); ok {
			yearEnd = &y
		}

		records = append(records, domain.TrajectoryRecord{
			Organization: stringField(entry, "organization", "organizacion", "partido", "agrupacion"),
			Role:         stringField(entry, "role", "cargo", "rol"),
			Type:         typ,
			Result:       result,
			YearStart:    yearStart,
			YearEnd:      yearEnd,
		})
	}
	return records
}

// canonicalSentenceStatus maps free-form procedural statuses onto the
// canonical set. Unknown statuses degrade to proceso, the lowest severity.
func canonicalSentenceStatus(status string) domain.SentenceStatus {
	c := Canon(status)
	switch {
	case strings.Contains(c, "firme"), strings.Contains(c, "consentida"), strings.Contains(c, "ejecutoriada"):
		return domain.StatusFirme
	case strings.Contains(c, "cumplida"), strings.Contains(c, "ejecutada"):
		return domain.StatusCumplida
	case strings.Contains(c, "apela"):
		return domain.StatusApelacion
	default:
		return domain.StatusProceso
	}
}

// PenalSentences normalizes raw criminal-sentence records.
func PenalSentences(raw json.RawMessage) []domain.PenalSentence {
	entries := decodeEntries(raw)
	if len(entries) == 0 {
		return nil
	}

	records := make([]domain.PenalSentence, 0, len(entries))
	for _, entry := range entries {
		records = append(records, domain.PenalSentence{
			Type:       stringField(entry, "type", "tipo", "delito"),
			CaseNumber: stringField(entry, "case_number", "expediente", "numero_expediente"),
			Court:      stringField(entry, "court", "juzgado", "corte"),
			Sentence:   stringField(entry, "sentence", "sentencia", "pena", "fallo"),
			Date:       stringField(entry, "date", "fecha"),
			Status:     canonicalSentenceStatus(stringField(entry, "status", "estado")),
			Source:     stringField(entry, "source", "fuente"),
		})
	}
	return records
}

// canonicalCivilType maps free-form civil subtypes onto the canonical set.
func canonicalCivilType(typ string) string {
	c := Canon(typ)
	switch {
	case strings.Contains(c, "violencia"):
		return domain.CivilViolenciaFamiliar
	case strings.Contains(c, "alimento"):
		return domain.CivilAlimentos
	case strings.Contains(c, "laboral"):
		return domain.CivilLaboral
	case strings.Contains(c, "contract"):
		return domain.CivilContractual
	case c == "":
		return "otros"
	default:
		return c
	}
}

// CivilSentences normalizes raw civil-sentence records.
func CivilSentences(raw json.RawMessage) []domain.CivilSentence {
	entries := decodeEntries(raw)
	if len(entries) == 0 {
		return nil
	}

	records := make([]domain.CivilSentence, 0, len(entries))
	for _, entry := range entries {
		amount, _ := numberField(entry, "amount", "monto", "importe")
		records = append(records, domain.CivilSentence{
			Type:        canonicalCivilType(stringField(entry, "type", "tipo", "materia")),
			Description: stringField(entry, "description", "descripcion", "detalle"),
			Amount:      amount,
			Status:      stringField(entry, "status", "estado"),
			Source:      stringField(entry, "source", "fuente"),
		})
	}
	return records
}

// MiningRights normalizes raw REINFO registry entries. Statuses are
// canonicalized to the registry's own capitalized vocabulary.
func MiningRights(raw json.RawMessage) []domain.MiningRight {
	entries := decodeEntries(raw)
	if len(entries) == 0 {
		return nil
	}

	records := make([]domain.MiningRight, 0, len(entries))
	for _, entry := range entries {
		status := Canon(stringField(entry, "status", "estado"))
		switch {
		case strings.Contains(status, "vigente"):
			status = "Vigente"
		case strings.Contains(status, "suspendido"):
			status = "Suspendido"
		case strings.Contains(status, "excluido"):
			status = "Excluido"
		default:
			status = "Excluido"
		}

		records = append(records, domain.MiningRight{
			Code:   stringField(entry, "code", "codigo", "derecho_minero"),
			Status: status,
		})
	}
	return records
}
