package types

// ProjectStatus is a stage of the production pipeline.
type ProjectStatus string

// Pipeline stages, in board order
const (
	StatusLead         ProjectStatus = "Lead"
	StatusCotizacion   ProjectStatus = "Cotizacion"
	StatusEnProduccion ProjectStatus = "EnProduccion"
	StatusEntregado    ProjectStatus = "Entregado"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ProjectStatuses lists every stage in pipeline order. The server accepts any
// of them on any write; order only matters for presentation.
var ProjectStatuses = []ProjectStatus{
	StatusLead, StatusCotizacion, StatusEnProduccion, StatusEntregado,
}

var ValidRoles = []string{RoleAdmin, RoleUser}

var statusLabels = map[ProjectStatus]string{
	StatusLead:         "Lead",
	StatusCotizacion:   "Cotización",
	StatusEnProduccion: "En Producción",
	StatusEntregado:    "Entregado",
}

func (s ProjectStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the human readable column title.
func (s ProjectStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Index returns the position of the stage in the pipeline, or -1.
func (s ProjectStatus) Index() int {
	for i, st := range ProjectStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
