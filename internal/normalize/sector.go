package normalize

import "strings"

// Canonical sector values for experience records.
const (
	SectorPublico = "publico"
	SectorPrivado = "privado"
)

// publicSectorTerms is the fixed dictionary of accent-stripped, lowercased
// keywords that identify Peruvian public-sector institutions: ministries,
// regional and local governments, the judiciary, regulators, armed forces
// and electoral bodies. Matching is substring-based on the canon form of
// the institution name.
var publicSectorTerms = []string{
	"ministerio",
	"viceministerio",
	"presidencia del consejo",
	"pcm",
	"despacho presidencial",
	"gobierno regional",
	"gobierno local",
	"gore",
	"municipalidad",
	"congreso",
	"parlamento",
	"poder judicial",
	"poder legislativo",
	"poder ejecutivo",
	"corte suprema",
	"corte superior",
	"juzgado",
	"fiscalia",
	"ministerio publico",
	"defensoria del pueblo",
	"tribunal constitucional",
	"contraloria",
	"procuraduria",
	"sunat",
	"sunarp",
	"sunedu",
	"sunafil",
	"sunass",
	"osce",
	"osinergmin",
	"osiptel",
	"ositran",
	"indecopi",
	"reniec",
	"onpe",
	"jne",
	"jurado nacional de elecciones",
	"banco central de reserva",
	"bcrp",
	"banco de la nacion",
	"essalud",
	"seguro social",
	"ejercito del peru",
	"marina de guerra",
	"fuerza aerea",
	"policia nacional",
	"fuerzas armadas",
	"hospital nacional",
	"hospital regional",
	"instituto nacional",
	"universidad nacional",
	"superintendencia",
	"registro nacional",
	"servir",
	"ceplan",
	"devida",
	"senamhi",
	"ingemmet",
	"imarpe",
	"concytec",
	"direccion regional",
	"ugel",
	"beneficencia publica",
	"empresa estatal",
	"sedapal",
	"petroperu",
}

// ResolveSector decides whether an experience entry is public or private.
// Resolution priority: an explicit sector field textually marked public, an
// explicit canonical type, then a keyword match of the institution name
// against the public-sector dictionary. Anything unresolved defaults to
// private.
func ResolveSector(sector, typ, institution string) string {
	if s := Canon(sector); s != "" {
		if strings.Contains(s, "public") || strings.Contains(s, "publico") {
			return SectorPublico
		}
		if strings.Contains(s, "privad") || strings.Contains(s, "privat") {
			return SectorPrivado
		}
	}

	switch Canon(typ) {
	case SectorPublico, "public":
		return SectorPublico
	case SectorPrivado, "private":
		return SectorPrivado
	}

	name := Canon(institution)
	if name != "" {
		for _, term := range publicSectorTerms {
			if strings.Contains(name, term) {
				return SectorPublico
			}
		}
	}

	return SectorPrivado
}
