package models

// IncidentType is the fixed set of report categories.
type IncidentType string

const (
	TypeAlagamento   IncidentType = "alagamento"
	TypeTiroteio     IncidentType = "tiroteio"
	TypeAssalto      IncidentType = "assalto"
	TypeAcidente     IncidentType = "acidente"
	TypeIncendio     IncidentType = "incendio"
	TypePolicia      IncidentType = "policia"
	TypePerigo       IncidentType = "perigo"
	TypeLixo         IncidentType = "lixo"
	TypeObras        IncidentType = "obras"
	TypeQuedaArvore  IncidentType = "queda_arvore"
	TypeBuraco       IncidentType = "buraco"
	TypeDeslizamento IncidentType = "deslizamento"
	TypeFaltaLuz     IncidentType = "falta_luz"
	TypeFaltaAgua    IncidentType = "falta_agua"
	TypeAnimal       IncidentType = "animal"
	TypeManifestacao IncidentType = "manifestacao"
	TypeOutros       IncidentType = "outros"
)

// SensitiveTypes require the stronger grid-snap privacy policy so that the
// public pin never points back at a single reporter.
var SensitiveTypes = map[IncidentType]struct{}{
	TypeTiroteio: {},
	TypeAssalto:  {},
	TypePolicia:  {},
}

// RestrictedTypes require a minimum reporter reputation to submit.
var RestrictedTypes = map[IncidentType]struct{}{
	TypeTiroteio: {},
	TypeAssalto:  {},
}

func (t IncidentType) Valid() bool {
	switch t {
	case TypeAlagamento, TypeTiroteio, TypeAssalto, TypeAcidente, TypeIncendio,
		TypePolicia, TypePerigo, TypeLixo, TypeObras, TypeQuedaArvore, TypeBuraco,
		TypeDeslizamento, TypeFaltaLuz, TypeFaltaAgua, TypeAnimal, TypeManifestacao,
		TypeOutros:
		return true
	}
	return false
}

func (t IncidentType) Sensitive() bool {
	_, ok := SensitiveTypes[t]
	return ok
}

func (t IncidentType) Restricted() bool {
	_, ok := RestrictedTypes[t]
	return ok
}

// Severity of an incident, ordered baixa < media < alta.
type Severity string

const (
	SeverityBaixa Severity = "baixa"
	SeverityMedia Severity = "media"
	SeverityAlta  Severity = "alta"
)

// Rank returns the ordering value of a severity. Unknown values rank lowest.
func (s Severity) Rank() int {
	switch s {
	case SeverityMedia:
		return 2
	case SeverityAlta:
		return 3
	default:
		return 1
	}
}

func (s Severity) Valid() bool {
	switch s {
	case SeverityBaixa, SeverityMedia, SeverityAlta:
		return true
	}
	return false
}

// IncidentStatus moves only forward: open is the initial state, resolved and
// disputed are terminal.
type IncidentStatus string

const (
	StatusOpen     IncidentStatus = "open"
	StatusResolved IncidentStatus = "resolved"
	StatusDisputed IncidentStatus = "disputed"
)

// VoteType is a voter's stance on an incident.
type VoteType string

const (
	VoteConfirm  VoteType = "confirm"
	VoteRefute   VoteType = "refute"
	VoteResolved VoteType = "resolved"
)

func (v VoteType) Valid() bool {
	switch v {
	case VoteConfirm, VoteRefute, VoteResolved:
		return true
	}
	return false
}

// AlertMode selects how an alert preference matches incidents.
type AlertMode string

const (
	AlertModeRadius       AlertMode = "radius"
	AlertModeNeighborhood AlertMode = "neighborhood"
)
