package utils

import (
	"testing"
	"time"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
)

func TestDashboardStats(t *testing.T) {
	service, db := newTestService(t)
	stats := NewStatisticsService(db)

	inside := createMilitary(t, db, models.Military{
		FullName: "Maria Silva",
		Rank:     "Sargento",
		Unit:     "1ª Companhia",
	})
	outside := createMilitary(t, db, models.Military{
		FullName: "João Pereira",
		Rank:     "Cabo",
		Unit:     "2ª Companhia",
	})

	// Maria entra hoje.
	request, err := service.SubmitRequest(inside.ID, "Portão A", time.Now())
	if err != nil {
		t.Fatalf("registrar solicitação: %v", err)
	}
	if _, err := service.DecideRequest(request.ID, models.AccessOutcomeApproved, 1); err != nil {
		t.Fatalf("aprovar solicitação: %v", err)
	}

	// João tem uma solicitação parada na fila.
	if _, err := service.SubmitRequest(outside.ID, "Portão B", time.Now()); err != nil {
		t.Fatalf("registrar solicitação pendente: %v", err)
	}

	dashboard, err := stats.GetDashboardStats()
	if err != nil {
		t.Fatalf("calcular estatísticas: %v", err)
	}

	if dashboard.TotalMilitaries != 2 {
		t.Fatalf("esperava 2 militares, veio %d", dashboard.TotalMilitaries)
	}
	if dashboard.Present != 1 {
		t.Fatalf("esperava 1 presente, veio %d", dashboard.Present)
	}
	if dashboard.PendingRequests != 1 {
		t.Fatalf("esperava 1 pendente, veio %d", dashboard.PendingRequests)
	}
	if dashboard.CheckInsToday != 1 {
		t.Fatalf("esperava 1 check-in hoje, veio %d", dashboard.CheckInsToday)
	}
}

func TestBusiestLocations(t *testing.T) {
	service, db := newTestService(t)
	stats := NewStatisticsService(db)

	militaries := []string{"Maria Silva", "João Pereira", "Carlos Andrade"}
	for _, name := range militaries {
		military := createMilitary(t, db, models.Military{
			FullName: name,
			Rank:     "Soldado",
			Unit:     "3ª Companhia",
		})
		request, err := service.SubmitRequest(military.ID, "Portão A", time.Now())
		if err != nil {
			t.Fatalf("registrar solicitação: %v", err)
		}
		if _, err := service.DecideRequest(request.ID, models.AccessOutcomeApproved, 1); err != nil {
			t.Fatalf("aprovar solicitação: %v", err)
		}
	}

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)

	locations, err := stats.GetBusiestLocations(5, start, end)
	if err != nil {
		t.Fatalf("listar locais: %v", err)
	}
	if len(locations) != 1 {
		t.Fatalf("esperava um local, veio %d", len(locations))
	}
	if locations[0].Location != "Portão A" || locations[0].TotalEntries != 3 {
		t.Fatalf("agregação incorreta: %+v", locations[0])
	}
}
