package state

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Manager управляет состояниями пользователей.
// Хранит не больше size диалогов, самые давние вытесняются.
type Manager struct {
	mu     sync.Mutex
	states *lru.Cache[int64, *UserData] // telegramID -> UserData
}

// NewManager создаёт новый менеджер состояний
func NewManager(size int) (*Manager, error) {
	cache, err := lru.New[int64, *UserData](size)
	if err != nil {
		return nil, fmt.Errorf("create dialog state cache: %w", err)
	}
	return &Manager{states: cache}, nil
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if userData, exists := sm.states.Get(telegramID); exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		// Если состояние None, удаляем запись
		sm.states.Remove(telegramID)
		return
	}

	sm.entry(telegramID).State = state
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if userData, exists := sm.states.Get(telegramID); exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(telegramID).Data[key] = value
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states.Remove(telegramID)
}

// Len возвращает количество активных диалогов
func (sm *Manager) Len() int {
	return sm.states.Len()
}

func (sm *Manager) entry(telegramID int64) *UserData {
	userData, exists := sm.states.Get(telegramID)
	if !exists {
		userData = &UserData{
			State: StateNone,
			Data:  make(map[string]interface{}),
		}
		sm.states.Add(telegramID, userData)
	}
	return userData
}
