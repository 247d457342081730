package entity

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by the repository layer to avoid coupling with delivery DTOs.
// All filters are optional and combined with AND.
type AppointmentFilter struct {
	PatientName string // case-insensitive substring match on patient full name
	DoctorName  string // case-insensitive substring match on doctor full name
	DateFrom    string // Format: YYYY-MM-DD
	DateTo      string // Format: YYYY-MM-DD
	Status      string // exact status match
}
