package utils

import (
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/websocket"
)

// LifecycleService concentra as regras do ciclo de acesso: emissão de
// credencial, fila de solicitações, livro de registros e estado de presença.
// Toda mutação referente a um militar é serializada pelo mutex daquele id,
// para que duas leituras simultâneas ou duas decisões concorrentes nunca
// produzam estado inconsistente.
type LifecycleService struct {
	db        *gorm.DB
	wsHandler *websocket.WebSocketHandler
	wsEnabled bool

	mu            sync.Mutex
	identityLocks map[uint]*sync.Mutex
}

func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{
		db:            db,
		wsEnabled:     false,
		identityLocks: make(map[uint]*sync.Mutex),
	}
}

func (s *LifecycleService) SetWebSocketHandler(wsHandler *websocket.WebSocketHandler) {
	s.wsHandler = wsHandler
	s.wsEnabled = (wsHandler != nil)
}

// ReportUnknownCredential repassa ao painel a leitura de um código que não
// corresponde a nenhuma credencial emitida.
func (s *LifecycleService) ReportUnknownCredential(code, location string) {
	if s.wsEnabled {
		s.wsHandler.NotifyUnknownCredential(code, location)
	}
}

func (s *LifecycleService) lockIdentity(militaryID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.identityLocks[militaryID]
	if !ok {
		lock = &sync.Mutex{}
		s.identityLocks[militaryID] = lock
	}
	return lock
}

// CurrentState deriva a presença atual do militar a partir do histórico: a
// última entrada aprovada sem saída aprovada posterior significa presente.
// Sem eventos, não presente.
func (s *LifecycleService) CurrentState(militaryID uint) (models.PresenceState, error) {
	return s.currentStateTx(s.db, militaryID)
}

func (s *LifecycleService) currentStateTx(tx *gorm.DB, militaryID uint) (models.PresenceState, error) {
	var last models.AccessEvent
	err := tx.Where("military_id = ? AND outcome = ?", militaryID, models.AccessOutcomeApproved).
		Order("timestamp DESC, id DESC").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PresenceNotPresent, nil
	}
	if err != nil {
		return "", err
	}

	if last.Kind == models.AccessKindEntry {
		return models.PresencePresent, nil
	}
	return models.PresenceNotPresent, nil
}

// IssueCredential emite a credencial única do militar. A emissão só passa
// com nome, posto/graduação e unidade preenchidos, aponta o primeiro campo
// faltante na ordem fixa de cobrança e nunca reemite.
func (s *LifecycleService) IssueCredential(militaryID uint) (*models.Credential, error) {
	lock := s.lockIdentity(militaryID)
	lock.Lock()
	defer lock.Unlock()

	var military models.Military
	if err := s.db.First(&military, militaryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Entity: "militar"}
		}
		return nil, err
	}

	if field := FirstMissingCredentialField(&military); field != "" {
		return nil, &models.PreconditionError{Field: field}
	}

	var existing models.Credential
	err := s.db.Where("military_id = ?", militaryID).First(&existing).Error
	if err == nil {
		return nil, &models.ConflictError{Reason: "o militar já possui credencial emitida"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	code := NewCredentialCode()
	image, err := RenderCredentialImage(code)
	if err != nil {
		return nil, err
	}

	// Código e imagem entram juntos ou não entram: ninguém observa
	// credencial pela metade.
	credential := models.Credential{
		MilitaryID: militaryID,
		Code:       code,
		Image:      image,
		IssuedAt:   time.Now(),
	}
	if err := s.db.Create(&credential).Error; err != nil {
		return nil, err
	}

	return &credential, nil
}

// SubmitRequest registra a leitura de uma credencial como solicitação
// pendente. O tipo é deduzido da presença atual: quem está fora pede
// entrada, quem está dentro pede saída.
func (s *LifecycleService) SubmitRequest(militaryID uint, location string, timestamp time.Time) (*models.AccessRequest, error) {
	lock := s.lockIdentity(militaryID)
	lock.Lock()
	defer lock.Unlock()

	var military models.Military
	if err := s.db.First(&military, militaryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Entity: "militar"}
		}
		return nil, err
	}

	var pendingCount int64
	if err := s.db.Model(&models.AccessRequest{}).
		Where("military_id = ? AND status = ?", militaryID, models.RequestStatusPending).
		Count(&pendingCount).Error; err != nil {
		return nil, err
	}
	if pendingCount > 0 {
		return nil, &models.InvalidStateError{Reason: "já existe solicitação pendente para este militar"}
	}

	state, err := s.currentStateTx(s.db, militaryID)
	if err != nil {
		return nil, err
	}

	kind := models.AccessKindEntry
	if state == models.PresencePresent {
		kind = models.AccessKindExit
	}

	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	request := models.AccessRequest{
		MilitaryID:    militaryID,
		RequestedKind: kind,
		Timestamp:     timestamp,
		Location:      location,
		Status:        models.RequestStatusPending,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}

	if s.wsEnabled {
		s.wsHandler.NotifyPendingRequest(request)
	}

	return &request, nil
}

// DecideRequest resolve uma solicitação pendente exatamente uma vez.
// Aprovação grava o evento no livro de registros na mesma transação que
// encerra a solicitação; rejeição não toca no histórico. Uma segunda
// decisão sobre a mesma solicitação falha, nunca sobrescreve.
func (s *LifecycleService) DecideRequest(requestID uint, outcome models.AccessOutcome, operatorID uint) (*models.AccessRequest, error) {
	if outcome != models.AccessOutcomeApproved && outcome != models.AccessOutcomeRejected {
		return nil, &models.InvalidStateError{Reason: "resultado de decisão desconhecido"}
	}

	var request models.AccessRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Entity: "solicitação"}
		}
		return nil, err
	}

	lock := s.lockIdentity(request.MilitaryID)
	lock.Lock()
	defer lock.Unlock()

	// Releitura sob o lock: outra decisão pode ter encerrado a solicitação
	// entre a primeira consulta e a aquisição do mutex.
	if err := s.db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Entity: "solicitação"}
		}
		return nil, err
	}
	if request.IsTerminal() {
		return nil, &models.InvalidStateError{Reason: "solicitação já decidida"}
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if outcome == models.AccessOutcomeApproved {
			event := models.AccessEvent{
				RequestID:  request.ID,
				MilitaryID: request.MilitaryID,
				Kind:       request.RequestedKind,
				Timestamp:  now,
				Location:   request.Location,
				DecidedBy:  operatorID,
				Outcome:    models.AccessOutcomeApproved,
			}
			if err := s.appendEventTx(tx, &event); err != nil {
				return err
			}
			request.Status = models.RequestStatusApproved
		} else {
			request.Status = models.RequestStatusRejected
		}

		request.DecidedBy = &operatorID
		request.DecidedAt = &now
		return tx.Save(&request).Error
	})
	if err != nil {
		return nil, err
	}

	if s.wsEnabled {
		s.wsHandler.NotifyDecision(request)
	}

	return &request, nil
}

func (s *LifecycleService) appendEventTx(tx *gorm.DB, event *models.AccessEvent) error {
	var count int64
	if err := tx.Model(&models.AccessEvent{}).
		Where("request_id = ?", event.RequestID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &models.ConflictError{Reason: "evento já registrado para esta decisão"}
	}
	return tx.Create(event).Error
}

// RemoveMilitary apaga o cadastro só quando nada o referencia. Com
// credencial emitida ou histórico de acessos, a remoção falha e o caminho
// é a mudança de situação (inativo/desligado).
func (s *LifecycleService) RemoveMilitary(militaryID uint) error {
	lock := s.lockIdentity(militaryID)
	lock.Lock()
	defer lock.Unlock()

	var military models.Military
	if err := s.db.First(&military, militaryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Entity: "militar"}
		}
		return err
	}

	var credentialCount int64
	if err := s.db.Model(&models.Credential{}).
		Where("military_id = ?", militaryID).
		Count(&credentialCount).Error; err != nil {
		return err
	}
	if credentialCount > 0 {
		return &models.ConflictError{Reason: "o militar possui credencial emitida; altere a situação em vez de excluir"}
	}

	var eventCount int64
	if err := s.db.Model(&models.AccessEvent{}).
		Where("military_id = ?", militaryID).
		Count(&eventCount).Error; err != nil {
		return err
	}
	if eventCount > 0 {
		return &models.ConflictError{Reason: "o militar possui histórico de acessos; altere a situação em vez de excluir"}
	}

	return s.db.Delete(&models.Military{}, militaryID).Error
}

type RosterFilter struct {
	Query    string
	Presence models.PresenceState
	Status   models.MilitaryStatus
}

type RosterRow struct {
	Military       models.Military       `json:"military"`
	Presence       models.PresenceState  `json:"presence"`
	PendingRequest *models.AccessRequest `json:"pending_request,omitempty"`
	LastEntry      *time.Time            `json:"last_entry,omitempty"`
}

// Roster monta a projeção de listagem: cadastro + presença derivada +
// solicitação pendente. Roda dentro de uma transação de leitura para não
// mostrar uma solicitação no meio de uma decisão como nem pendente nem
// resolvida.
func (s *LifecycleService) Roster(filter RosterFilter) ([]RosterRow, error) {
	rows := []RosterRow{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Military{}).Preload("Credential")

		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Query != "" {
			like := "%" + strings.ToLower(filter.Query) + "%"
			query = query.Where(
				"LOWER(full_name) LIKE ? OR LOWER(rank) LIKE ? OR LOWER(unit) LIKE ?",
				like, like, like,
			)
		}

		var militaries []models.Military
		if err := query.Order("full_name ASC").Find(&militaries).Error; err != nil {
			return err
		}

		for _, military := range militaries {
			presence, err := s.currentStateTx(tx, military.ID)
			if err != nil {
				return err
			}
			if filter.Presence != "" && presence != filter.Presence {
				continue
			}

			row := RosterRow{
				Military: military,
				Presence: presence,
			}

			var pending models.AccessRequest
			err = tx.Where("military_id = ? AND status = ?", military.ID, models.RequestStatusPending).
				First(&pending).Error
			if err == nil {
				row.PendingRequest = &pending
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if presence == models.PresencePresent {
				var lastEntry models.AccessEvent
				err = tx.Where("military_id = ? AND kind = ? AND outcome = ?",
					military.ID, models.AccessKindEntry, models.AccessOutcomeApproved).
					Order("timestamp DESC, id DESC").
					First(&lastEntry).Error
				if err == nil {
					row.LastEntry = &lastEntry.Timestamp
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
			}

			rows = append(rows, row)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}
