package dto

// CreateReservationRequest tolerates every key variant the mobile
// clients have sent for the same logical fields.
type CreateReservationRequest struct {
	PropiedadID  *uint  `json:"propiedad_id"`
	PropertyIDv1 *uint  `json:"property_id"`
	PropertyIDv2 *uint  `json:"propertyId"`
	PropiedadIDv *uint  `json:"propiedadId"`
	ID           *uint  `json:"id"`
	FechaInicio  string `json:"fecha_inicio"`
	StartDate    string `json:"startDate"`
	FechaFin     string `json:"fecha_fin"`
	EndDate      string `json:"endDate"`
	Personas     *int   `json:"personas"`

	Mensaje  string `json:"mensaje"`
	Message  string `json:"message"`
	Detalles string `json:"detalles"`

	Nombre   string `json:"nombre"`
	Name     string `json:"name"`
	Correo   string `json:"correo"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
	Whatsapp string `json:"whatsapp"`
	Phone    string `json:"phone"`

	TipoUso           string `json:"tipo_uso"`
	Uso               string `json:"uso"`
	UseType           string `json:"useType"`
	ContactoPreferido string `json:"contacto_preferido"`
	PreferredContact  string `json:"preferredContact"`
}

// PropertyID resolves the property reference from whichever key was
// sent.
func (r *CreateReservationRequest) PropertyID() *uint {
	for _, id := range []*uint{r.PropiedadID, r.PropertyIDv1, r.PropertyIDv2, r.PropiedadIDv, r.ID} {
		if id != nil && *id > 0 {
			return id
		}
	}
	return nil
}

type UpdateReservationStatusRequest struct {
	Estado string `json:"estado"`
	Status string `json:"status"`
}
