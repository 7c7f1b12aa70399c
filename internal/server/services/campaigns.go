package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/Berkcanaskin/stellar/internal/ledger"
	"github.com/Berkcanaskin/stellar/internal/logging"
	"github.com/Berkcanaskin/stellar/internal/server/models"
	"github.com/Berkcanaskin/stellar/internal/server/repositories/campaigns"
)

// campaignTxLimit caps the recent-activity listing per campaign.
const campaignTxLimit = 10

// CampaignView is a campaign with its live collected balance. Balance is 0
// when the account is unfunded or the ledger could not be reached.
type CampaignView struct {
	models.Campaign
	Balance float64 `json:"balance"`
	Funded  bool    `json:"funded"`
}

type CampaignService struct {
	campaigns campaigns.Repository
	ledger    Ledger
	logger    logging.Logger
}

func NewCampaignService(repo campaigns.Repository, l Ledger, logger logging.Logger) *CampaignService {
	return &CampaignService{campaigns: repo, ledger: l, logger: logger}
}

// Create registers a campaign collecting on publicKey.
func (s *CampaignService) Create(ctx context.Context, title string, goal float64, publicKey string) (*models.Campaign, error) {

	if title == "" {
		return nil, fmt.Errorf("title is required: %w", common.ErrorValidation)
	}
	if goal <= 0 {
		return nil, fmt.Errorf("goal must be positive: %w", common.ErrorValidation)
	}
	if !ledger.IsValidAddress(publicKey) {
		return nil, fmt.Errorf("public key is not a valid address: %w", common.ErrorValidation)
	}

	return s.campaigns.Create(ctx, &models.Campaign{
		Title:     title,
		Goal:      goal,
		PublicKey: publicKey,
	})
}

// List returns all campaigns with balances fetched concurrently. A failed
// lookup leaves that campaign at 0 rather than failing the listing.
func (s *CampaignService) List(ctx context.Context) ([]CampaignView, error) {

	list, err := s.campaigns.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CampaignView, len(list))
	var wg sync.WaitGroup
	for i, c := range list {
		views[i] = CampaignView{Campaign: c}

		wg.Add(1)
		go func(i int, publicKey string) {
			defer wg.Done()
			acct, err := s.ledger.LoadAccount(ctx, publicKey)
			if err != nil {
				s.logger.Debug(ctx, "campaign balance lookup failed", "publicKey", publicKey, "error", err)
				return
			}
			views[i].Balance = acct.NativeBalance()
			views[i].Funded = true
		}(i, c.PublicKey)
	}
	wg.Wait()

	return views, nil
}

// Get returns one campaign.
func (s *CampaignService) Get(ctx context.Context, id int64) (*models.Campaign, error) {
	return s.campaigns.Get(ctx, id)
}

// Delete removes a campaign from the registry. Funds already collected on
// its account are untouched.
func (s *CampaignService) Delete(ctx context.Context, id int64) error {
	return s.campaigns.Delete(ctx, id)
}

// Operations lists the campaign's most recent ledger operations.
func (s *CampaignService) Operations(ctx context.Context, id int64) ([]ledger.OperationRecord, error) {

	c, err := s.campaigns.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ops, err := s.ledger.Operations(ctx, c.PublicKey, campaignTxLimit, "desc")
	if err != nil {
		return nil, mapLedgerError("list operations", err)
	}
	return ops, nil
}
