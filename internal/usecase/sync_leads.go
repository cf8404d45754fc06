package usecase

import (
	"context"
	"log"

	"github.com/globallaw/crm-backend/internal/infra/integration/meta"
)

type SyncLeadsInput struct {
	FormID    string `json:"form_id"`
	PageToken string `json:"page_token"`
}

type SyncLeadsOutput struct {
	Fetched  int `json:"fetched"`
	Imported int `json:"imported"`
}

// SyncLeadsUseCase pulls a form's leads from the ads platform and imports the
// ones not seen before. Individual lead failures are logged and skipped so
// one bad record cannot sink the batch; the caller gets aggregate counts.
type SyncLeadsUseCase struct {
	Source   LeadSource
	Ledger   ImportLedger
	Importer *ImportLeadUseCase
}

func NewSyncLeadsUseCase(source LeadSource, ledger ImportLedger, importer *ImportLeadUseCase) *SyncLeadsUseCase {
	return &SyncLeadsUseCase{
		Source:   source,
		Ledger:   ledger,
		Importer: importer,
	}
}

func (uc *SyncLeadsUseCase) Execute(ctx context.Context, input SyncLeadsInput) (*SyncLeadsOutput, error) {
	leads, err := uc.Source.GetLeads(ctx, input.FormID, input.PageToken)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodeUpstreamError,
			Message: err.Error(),
		}
	}

	out := &SyncLeadsOutput{Fetched: len(leads)}

	for _, lead := range leads {
		imported, err := uc.Ledger.Contains(ctx, lead.ID)
		if err != nil {
			log.Printf("⚠️ ledger check failed for lead %s: %v", lead.ID, err)
			continue
		}
		if imported {
			continue
		}

		info := meta.ExtractContactInfo(lead)
		_, err = uc.Importer.Execute(ctx, ImportLeadInput{
			LeadID: info.LeadID,
			Name:   info.Name,
			Email:  info.Email,
			Phone:  info.Phone,
		})
		if err != nil {
			log.Printf("⚠️ failed to import lead %s: %v", lead.ID, err)
			continue
		}
		out.Imported++
	}

	return out, nil
}
