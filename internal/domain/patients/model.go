package patients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Vaccines es el estado de vacunación (tri-estado).
// @Enum Si, No, ""
type Vaccines string

const (
	VaccinesYes     Vaccines = "Si"
	VaccinesNo      Vaccines = "No"
	VaccinesUnknown Vaccines = ""
)

// Opciones fijas de los chips del formulario.
var (
	OperationOptions = []string{
		"Castración",
		"Piometra",
		"Cesárea",
		"Extirpación de tumor",
	}

	StudyOptions = []string{
		"Análisis de sangre",
		"Cardiólogo",
		"Ecografía",
	}
)

// Age se guarda tal cual se cargó. Acepta string o número en JSON
// (fichas viejas pueden traer la edad como número) y siempre se emite como string.
type Age string

func (a *Age) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*a = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Age(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("age must be a string or a number: %w", err)
	}
	*a = Age(n.String())
	return nil
}

// Number interpreta la edad. ok=false si está vacía o no es numérica.
func (a Age) Number() (float64, bool) {
	s := strings.TrimSpace(string(a))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// timestampLayout replica el toISOString del navegador (UTC, milisegundos).
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Formatos que Date acepta y aparecen en fichas viejas. Sin zona => hora local,
// salvo la fecha sola que es UTC.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// Timestamp es createdAt. Lo leído del store se reescribe tal cual vino
// (string, número o lo que sea); si no se puede interpretar la hora queda
// en cero y la ficha ordena al final.
type Timestamp struct {
	time.Time
	raw string
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) String() string {
	if !t.Time.IsZero() {
		return t.Time.UTC().Format(timestampLayout)
	}
	var s string
	if err := json.Unmarshal([]byte(t.raw), &s); err == nil {
		return s
	}
	return t.raw
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.raw != "" {
		return []byte(t.raw), nil
	}
	if t.Time.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Time.UTC().Format(timestampLayout))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*t = Timestamp{raw: string(b), Time: parseStoredTime(b)}
	return nil
}

func (t Timestamp) MarshalYAML() (any, error) {
	return t.String(), nil
}

// parseStoredTime interpreta createdAt como lo haría new Date(valor).
func parseStoredTime(b []byte) time.Time {
	if len(b) == 0 {
		return time.Time{}
	}

	if b[0] != '"' {
		// epoch en milisegundos (Date.now())
		var ms json.Number
		if err := json.Unmarshal(b, &ms); err != nil {
			return time.Time{}
		}
		f, err := ms.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return time.Time{}
		}
		return time.UnixMilli(int64(f)).UTC()
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return time.Time{}
	}
	s = strings.TrimSpace(s)

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return parsed.UTC()
	}
	if parsed, err := time.Parse("2006-01-02", s); err == nil {
		return parsed
	}
	for _, layout := range localLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

// Patient es la ficha de un animal con los datos de contacto del responsable.
// Las claves JSON son las del layout persistido (vet_patients).
type Patient struct {
	ID string `json:"id" yaml:"id"`

	PatientName string `json:"patientName" yaml:"patientName"`
	Species     string `json:"species" yaml:"species"`
	Breed       string `json:"breed" yaml:"breed"`
	Age         Age    `json:"age" yaml:"age"`

	VaccinesUpToDate Vaccines `json:"vaccinesUpToDate" yaml:"vaccinesUpToDate"`
	Operations       []string `json:"operations" yaml:"operations"`
	RecentStudies    []string `json:"recentStudies" yaml:"recentStudies"`

	OwnerName  string `json:"ownerName" yaml:"ownerName"`
	OwnerPhone string `json:"ownerPhone" yaml:"ownerPhone"`
	Notes      string `json:"notes" yaml:"notes"`

	CreatedAt Timestamp `json:"createdAt" yaml:"createdAt"`
}

// storedPatient acepta tipos flojos por campo: una ficha con un número donde
// va un texto se sigue leyendo en lugar de invalidar toda la lista.
type storedPatient struct {
	ID               looseString `json:"id"`
	PatientName      looseString `json:"patientName"`
	Species          looseString `json:"species"`
	Breed            looseString `json:"breed"`
	Age              looseString `json:"age"`
	VaccinesUpToDate looseString `json:"vaccinesUpToDate"`
	Operations       looseList   `json:"operations"`
	RecentStudies    looseList   `json:"recentStudies"`
	OwnerName        looseString `json:"ownerName"`
	OwnerPhone       looseString `json:"ownerPhone"`
	Notes            looseString `json:"notes"`
	CreatedAt        Timestamp   `json:"createdAt"`
}

func (p *Patient) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return fmt.Errorf("patient must be a JSON object")
	}

	var sp storedPatient
	if err := json.Unmarshal(b, &sp); err != nil {
		return err
	}

	*p = Patient{
		ID:               string(sp.ID),
		PatientName:      string(sp.PatientName),
		Species:          string(sp.Species),
		Breed:            string(sp.Breed),
		Age:              Age(sp.Age),
		VaccinesUpToDate: Vaccines(sp.VaccinesUpToDate),
		Operations:       sp.Operations.strings(),
		RecentStudies:    sp.RecentStudies.strings(),
		OwnerName:        string(sp.OwnerName),
		OwnerPhone:       string(sp.OwnerPhone),
		Notes:            string(sp.Notes),
		CreatedAt:        sp.CreatedAt,
	}
	return nil
}

// looseString lee string, número o booleano como texto; null => "".
type looseString string

func (l *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*l = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = looseString(s)
	case string(b) == "true" || string(b) == "false":
		*l = looseString(b)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected text, got %s", b)
		}
		*l = looseString(n.String())
	}
	return nil
}

// looseList lee un array de textos; null o ausente => lista vacía.
type looseList []looseString

func (l *looseList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*l = nil
		return nil
	}
	var items []looseString
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

func (l looseList) strings() []string {
	out := make([]string, 0, len(l))
	for _, v := range l {
		out = append(out, string(v))
	}
	return out
}

// Draft son los valores del formulario de alta (sin validar).
type Draft struct {
	PatientName      string
	Species          string
	Breed            string
	Age              Age
	VaccinesUpToDate Vaccines
	Operations       []string
	RecentStudies    []string
	OwnerName        string
	OwnerPhone       string
	Notes            string
}

// Patch son los valores del formulario de edición. nil = no tocar.
// id y createdAt no se pueden cambiar.
type Patch struct {
	PatientName      *string
	Species          *string
	Breed            *string
	Age              *Age
	VaccinesUpToDate *Vaccines
	Operations       *[]string
	RecentStudies    *[]string
	OwnerName        *string
	OwnerPhone       *string
	Notes            *string
}

// Draft devuelve los campos editables de la ficha.
func (p Patient) Draft() Draft {
	return Draft{
		PatientName:      p.PatientName,
		Species:          p.Species,
		Breed:            p.Breed,
		Age:              p.Age,
		VaccinesUpToDate: p.VaccinesUpToDate,
		Operations:       p.Operations,
		RecentStudies:    p.RecentStudies,
		OwnerName:        p.OwnerName,
		OwnerPhone:       p.OwnerPhone,
		Notes:            p.Notes,
	}
}

// Apply aplica los campos presentes del patch. Sirve para validar la ficha
// resultante antes de persistir una edición.
func (d Draft) Apply(p Patch) Draft {
	if p.PatientName != nil {
		d.PatientName = *p.PatientName
	}
	if p.Species != nil {
		d.Species = *p.Species
	}
	if p.Breed != nil {
		d.Breed = *p.Breed
	}
	if p.Age != nil {
		d.Age = *p.Age
	}
	if p.VaccinesUpToDate != nil {
		d.VaccinesUpToDate = *p.VaccinesUpToDate
	}
	if p.Operations != nil {
		d.Operations = *p.Operations
	}
	if p.RecentStudies != nil {
		d.RecentStudies = *p.RecentStudies
	}
	if p.OwnerName != nil {
		d.OwnerName = *p.OwnerName
	}
	if p.OwnerPhone != nil {
		d.OwnerPhone = *p.OwnerPhone
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	return d
}

func (d Draft) normalized() Draft {
	return Draft{
		PatientName:      strings.TrimSpace(d.PatientName),
		Species:          strings.TrimSpace(d.Species),
		Breed:            strings.TrimSpace(d.Breed),
		Age:              Age(strings.TrimSpace(string(d.Age))),
		VaccinesUpToDate: Vaccines(strings.TrimSpace(string(d.VaccinesUpToDate))),
		Operations:       cleanList(d.Operations),
		RecentStudies:    cleanList(d.RecentStudies),
		OwnerName:        strings.TrimSpace(d.OwnerName),
		OwnerPhone:       strings.TrimSpace(d.OwnerPhone),
		Notes:            strings.TrimSpace(d.Notes),
	}
}

// cleanList recorta, descarta vacíos y duplicados (un chip no se selecciona dos veces).
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, raw := range in {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
