package entity

// Stage is one of the six funnel stages a client moves through. The display
// values are the Spanish labels the dashboard renders, so they double as the
// wire format.
type Stage string

const (
	StageNewLead           Stage = "Nuevo Lead"
	StageContacted         Stage = "Contactado"
	StageProposalSent      Stage = "Propuesta Enviada"
	StageInProgress        Stage = "En Proceso"
	StageReadyForSignature Stage = "Listo para Firma"
	StageCompleted         Stage = "Completado"
)

// StageOrder is the funnel column order. It only drives layout and dashboard
// aggregation; transitions between stages are unrestricted.
var StageOrder = []Stage{
	StageNewLead,
	StageContacted,
	StageProposalSent,
	StageInProgress,
	StageReadyForSignature,
	StageCompleted,
}

func (s Stage) IsValid() bool {
	for _, stage := range StageOrder {
		if s == stage {
			return true
		}
	}
	return false
}

func (s Stage) String() string {
	return string(s)
}
