package utils

import (
	"time"

	"gorm.io/gorm"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
)

type StatisticsService struct {
	db *gorm.DB
}

// NewStatisticsService monta o serviço de estatísticas sobre o livro de
// registros de acesso.
func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{
		db: db,
	}
}

type DashboardStats struct {
	TotalMilitaries int64 `json:"total_militaries"`
	Present         int64 `json:"present"`
	PendingRequests int64 `json:"pending_requests"`
	CheckInsToday   int64 `json:"check_ins_today"`
}

type TimeSeriesData struct {
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
}

type LocationStats struct {
	Location     string `json:"location"`
	TotalEntries int    `json:"total_entries"`
	TotalExits   int    `json:"total_exits"`
}

type ActiveMilitaryStats struct {
	MilitaryID    uint   `json:"military_id"`
	FullName      string `json:"full_name"`
	Rank          string `json:"rank"`
	TotalAccesses int    `json:"total_accesses"`
}

// GetDashboardStats monta os totais do painel inicial.
func (ss *StatisticsService) GetDashboardStats() (DashboardStats, error) {
	var stats DashboardStats

	if err := ss.db.Model(&models.Military{}).Count(&stats.TotalMilitaries).Error; err != nil {
		return stats, err
	}

	// Presente = o último evento aprovado do militar é uma entrada.
	if err := ss.db.Raw(`
		SELECT COUNT(*)
		FROM militaries m
		WHERE m.deleted_at IS NULL AND (
			SELECT e.kind FROM access_events e
			WHERE e.military_id = m.id AND e.outcome = 'approved'
			ORDER BY e.timestamp DESC, e.id DESC
			LIMIT 1
		) = 'entry'
	`).Count(&stats.Present).Error; err != nil {
		return stats, err
	}

	if err := ss.db.Model(&models.AccessRequest{}).
		Where("status = ?", models.RequestStatusPending).
		Count(&stats.PendingRequests).Error; err != nil {
		return stats, err
	}

	startOfDay := time.Now().Truncate(24 * time.Hour)
	if err := ss.db.Model(&models.AccessEvent{}).
		Where("kind = ? AND outcome = ? AND timestamp >= ?",
			models.AccessKindEntry, models.AccessOutcomeApproved, startOfDay).
		Count(&stats.CheckInsToday).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

// GetCheckInTimeSeries agrega entradas aprovadas por intervalo, para o
// gráfico de check-ins por horário do painel.
func (ss *StatisticsService) GetCheckInTimeSeries(location string, interval string, start, end time.Time) ([]TimeSeriesData, error) {
	var sqlFormat, goLayout string
	switch interval {
	case "hour":
		sqlFormat = "%Y-%m-%d %H:00:00"
		goLayout = "2006-01-02 15:00:00"
	case "day":
		sqlFormat = "%Y-%m-%d"
		goLayout = "2006-01-02"
	case "month":
		sqlFormat = "%Y-%m-01"
		goLayout = "2006-01-02"
	default:
		sqlFormat = "%Y-%m-%d %H:00:00"
		goLayout = "2006-01-02 15:00:00"
	}

	query := ss.db.Table("access_events").
		Select("strftime(?, timestamp) as timestamp_str, COUNT(*) as count", sqlFormat).
		Where("timestamp BETWEEN ? AND ? AND kind = ? AND outcome = ?",
			start, end, models.AccessKindEntry, models.AccessOutcomeApproved).
		Group("timestamp_str").
		Order("timestamp_str")

	if location != "" {
		query = query.Where("location = ?", location)
	}

	type rawData struct {
		TimestampStr string `gorm:"column:timestamp_str"`
		Count        int    `gorm:"column:count"`
	}

	var rawResults []rawData
	if err := query.Scan(&rawResults).Error; err != nil {
		return nil, err
	}

	var data []TimeSeriesData
	for _, r := range rawResults {
		t, err := time.Parse(goLayout, r.TimestampStr)
		if err != nil {
			continue
		}
		data = append(data, TimeSeriesData{
			Timestamp: t,
			Count:     r.Count,
		})
	}

	return data, nil
}

// GetBusiestLocations lista os pontos de controle com mais movimento.
func (ss *StatisticsService) GetBusiestLocations(limit int, start, end time.Time) ([]LocationStats, error) {
	var stats []LocationStats

	if err := ss.db.Table("access_events").
		Select("location, "+
			"COUNT(CASE WHEN kind = 'entry' THEN 1 END) as total_entries, "+
			"COUNT(CASE WHEN kind = 'exit' THEN 1 END) as total_exits").
		Where("timestamp BETWEEN ? AND ? AND outcome = ?", start, end, models.AccessOutcomeApproved).
		Group("location").
		Order("total_entries DESC").
		Limit(limit).
		Scan(&stats).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// GetMostActiveMilitaries lista quem mais entrou e saiu no período.
func (ss *StatisticsService) GetMostActiveMilitaries(limit int, start, end time.Time) ([]ActiveMilitaryStats, error) {
	var stats []ActiveMilitaryStats

	if err := ss.db.Table("access_events").
		Select("militaries.id as military_id, militaries.full_name as full_name, "+
			"militaries.rank as rank, COUNT(*) as total_accesses").
		Joins("LEFT JOIN militaries ON access_events.military_id = militaries.id").
		Where("access_events.timestamp BETWEEN ? AND ? AND access_events.outcome = ?",
			start, end, models.AccessOutcomeApproved).
		Group("militaries.id, militaries.full_name, militaries.rank").
		Order("total_accesses DESC").
		Limit(limit).
		Scan(&stats).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
