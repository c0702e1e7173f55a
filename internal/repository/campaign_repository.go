// internal/repository/campaign_repository.go
package repository

import (
	"database/sql"
	"fmt"
	"strings"

	appErrors "github.com/mailburst/mailburst/internal/errors"
	"github.com/mailburst/mailburst/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(campaign *model.Campaign) error
	GetByID(id int) (*model.Campaign, error)
	ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error)
	MarkRunning(id int) error
	Complete(id int, stats model.Stats, status string) error
	LogOutcome(campaignID int, outcome model.Outcome) error
	GetCampaignStats(id int) (map[string]int, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

// Create inserts the campaign and fills in its generated ID and CreatedAt.
func (r *CampaignRepository) Create(campaign *model.Campaign) error {
	query := `
		INSERT INTO campaigns (name, template_id, performance_mode, status, sheet_file, total_recipients)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.DB.QueryRow(query,
		campaign.Name,
		campaign.TemplateID,
		campaign.PerformanceMode,
		campaign.Status,
		campaign.SheetFile,
		campaign.TotalRecipients,
	).Scan(&campaign.ID, &campaign.CreatedAt)
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	return nil
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	query := `
		SELECT id, name, template_id, performance_mode, status, sheet_file,
		       total_recipients, emails_sent, emails_failed, success_rate,
		       created_at, completed_at
		FROM campaigns
		WHERE id = $1`

	campaign := &model.Campaign{}
	err := r.DB.QueryRow(query, id).Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.TemplateID,
		&campaign.PerformanceMode,
		&campaign.Status,
		&campaign.SheetFile,
		&campaign.TotalRecipients,
		&campaign.EmailsSent,
		&campaign.EmailsFailed,
		&campaign.SuccessRate,
		&campaign.CreatedAt,
		&campaign.CompletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign %d: %w", id, err)
	}
	return campaign, nil
}

// ListCampaigns returns a page of campaigns, newest first, optionally
// filtered by status, together with the total count for pagination.
func (r *CampaignRepository) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = "WHERE status = $1"
		args = append(args, status)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM campaigns %s", where)
	var total int
	if err := r.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT id, name, template_id, performance_mode, status, sheet_file,
		       total_recipients, emails_sent, emails_failed, success_rate,
		       created_at, completed_at
		FROM campaigns
		%s
		ORDER BY created_at DESC
		OFFSET $%d LIMIT $%d`, where, len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	rows, err := r.DB.Query(listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		campaign := &model.Campaign{}
		err := rows.Scan(
			&campaign.ID,
			&campaign.Name,
			&campaign.TemplateID,
			&campaign.PerformanceMode,
			&campaign.Status,
			&campaign.SheetFile,
			&campaign.TotalRecipients,
			&campaign.EmailsSent,
			&campaign.EmailsFailed,
			&campaign.SuccessRate,
			&campaign.CreatedAt,
			&campaign.CompletedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, total, nil
}

func (r *CampaignRepository) MarkRunning(id int) error {
	result, err := r.DB.Exec(`UPDATE campaigns SET status = 'running' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark campaign %d running: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark campaign %d running: %w", id, err)
	}
	if affected == 0 {
		return appErrors.NewCampaignNotFound(id)
	}
	return nil
}

// Complete records the final counters and terminal status of a run.
func (r *CampaignRepository) Complete(id int, stats model.Stats, status string) error {
	query := `
		UPDATE campaigns
		SET status = $1, emails_sent = $2, emails_failed = $3,
		    success_rate = $4, completed_at = NOW()
		WHERE id = $5`

	result, err := r.DB.Exec(query, status, stats.Sent, stats.Failed, stats.SuccessRate, id)
	if err != nil {
		return fmt.Errorf("complete campaign %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete campaign %d: %w", id, err)
	}
	if affected == 0 {
		return appErrors.NewCampaignNotFound(id)
	}
	return nil
}

func (r *CampaignRepository) LogOutcome(campaignID int, outcome model.Outcome) error {
	query := `
		INSERT INTO email_logs (campaign_id, recipient_name, recipient_email,
		                        cc_list, bcc_list, template_used, status,
		                        error_message, task_seq)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.Exec(query,
		campaignID,
		outcome.Name,
		outcome.Email,
		strings.Join(outcome.CC, ","),
		strings.Join(outcome.BCC, ","),
		outcome.Template,
		string(outcome.Status),
		outcome.Reason,
		outcome.Seq,
	)
	if err != nil {
		return fmt.Errorf("log outcome for campaign %d: %w", campaignID, err)
	}
	return nil
}

// GetCampaignStats returns the per-status counts from the email log.
func (r *CampaignRepository) GetCampaignStats(id int) (map[string]int, error) {
	rows, err := r.DB.Query(
		`SELECT status, COUNT(*) FROM email_logs WHERE campaign_id = $1 GROUP BY status`, id)
	if err != nil {
		return nil, fmt.Errorf("campaign %d stats: %w", id, err)
	}
	defer rows.Close()

	stats := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan campaign stats: %w", err)
		}
		stats[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("campaign %d stats: %w", id, err)
	}
	return stats, nil
}
