package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/mingyue-ai/agenthub/internal/apperrors"
	"github.com/mingyue-ai/agenthub/internal/model"
)

type mockAgentStore struct {
	agents         map[string]*model.Agent
	cascadeDeleted []string
}

func newMockAgentStore() *mockAgentStore {
	return &mockAgentStore{agents: make(map[string]*model.Agent)}
}

func (m *mockAgentStore) Create(agent *model.Agent) error {
	m.agents[agent.ID] = agent
	return nil
}

func (m *mockAgentStore) GetByID(id, ownerID string) (*model.Agent, error) {
	if agent, ok := m.agents[id]; ok && agent.OwnerID == ownerID {
		return agent, nil
	}
	return nil, apperrors.NotFoundf("agent %s not found", id)
}

func (m *mockAgentStore) List(ownerID string) ([]*model.Agent, error) {
	var result []*model.Agent
	for _, agent := range m.agents {
		if agent.OwnerID == ownerID {
			result = append(result, agent)
		}
	}
	return result, nil
}

func (m *mockAgentStore) Update(agent *model.Agent) error {
	m.agents[agent.ID] = agent
	return nil
}

func (m *mockAgentStore) DeleteCascade(id, ownerID string) error {
	delete(m.agents, id)
	m.cascadeDeleted = append(m.cascadeDeleted, id)
	return nil
}

const testOwner = "owner-1"

func TestCreateAgent_NameRequired(t *testing.T) {
	svc := NewService(newMockAgentStore())

	_, err := svc.CreateAgent(context.Background(), testOwner, &CreateAgentRequest{Name: "   "})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("CreateAgent() error = %v, want ErrInvalidInput", err)
	}
}

func TestCreateAgent_SettingsValidation(t *testing.T) {
	svc := NewService(newMockAgentStore())

	tests := []struct {
		name     string
		settings model.AgentSettings
		wantErr  bool
	}{
		{"defaults", model.AgentSettings{}, false},
		{"valid", model.AgentSettings{Model: "gpt-4", Temperature: 1.5, MaxTokens: 2048}, false},
		{"temperature too high", model.AgentSettings{Temperature: 2.5}, true},
		{"temperature negative", model.AgentSettings{Temperature: -0.1}, true},
		{"max tokens too high", model.AgentSettings{MaxTokens: 5000}, true},
		{"max tokens negative", model.AgentSettings{MaxTokens: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAgent(context.Background(), testOwner, &CreateAgentRequest{
				Name:     "test agent",
				Settings: tt.settings,
			})
			if tt.wantErr && !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("CreateAgent() error = %v, want ErrInvalidInput", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("CreateAgent() error = %v", err)
			}
		})
	}
}

func TestCreateAgent_Defaults(t *testing.T) {
	store := newMockAgentStore()
	svc := NewService(store)

	agent, err := svc.CreateAgent(context.Background(), testOwner, &CreateAgentRequest{Name: "  my agent  "})
	if err != nil {
		t.Fatalf("CreateAgent() error = %v", err)
	}
	if agent.Name != "my agent" {
		t.Errorf("name = %q, want trimmed", agent.Name)
	}
	if !agent.IsActive {
		t.Error("new agent must be active")
	}
	if agent.ID == "" {
		t.Error("new agent must get an id")
	}
	if _, ok := store.agents[agent.ID]; !ok {
		t.Error("agent must be persisted")
	}
}

func TestGetAgent_OwnerScoped(t *testing.T) {
	store := newMockAgentStore()
	store.agents["a1"] = &model.Agent{ID: "a1", OwnerID: testOwner, Name: "mine"}
	svc := NewService(store)

	if _, err := svc.GetAgent(context.Background(), "a1", testOwner); err != nil {
		t.Fatalf("GetAgent() error = %v", err)
	}
	if _, err := svc.GetAgent(context.Background(), "a1", "other"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetAgent() for other owner error = %v, want ErrNotFound", err)
	}
}

func TestUpdateAgent_PartialFields(t *testing.T) {
	store := newMockAgentStore()
	store.agents["a1"] = &model.Agent{
		ID: "a1", OwnerID: testOwner, Name: "old name",
		Description: "old description",
		Settings:    model.AgentSettings{Model: "gpt-4"},
		IsActive:    true,
	}
	svc := NewService(store)

	// 只给 Name，其余字段不变
	updated, err := svc.UpdateAgent(context.Background(), "a1", testOwner, &UpdateAgentRequest{Name: "new name"})
	if err != nil {
		t.Fatalf("UpdateAgent() error = %v", err)
	}
	if updated.Name != "new name" {
		t.Errorf("name = %q, want updated", updated.Name)
	}
	if updated.Description != "old description" || updated.Settings.Model != "gpt-4" || !updated.IsActive {
		t.Error("untouched fields must survive a partial update")
	}

	// 显式清空 Description，停用 Agent
	empty := ""
	inactive := false
	updated, err = svc.UpdateAgent(context.Background(), "a1", testOwner, &UpdateAgentRequest{
		Description: &empty,
		IsActive:    &inactive,
	})
	if err != nil {
		t.Fatalf("UpdateAgent() error = %v", err)
	}
	if updated.Description != "" {
		t.Error("explicit empty description must clear the field")
	}
	if updated.IsActive {
		t.Error("is_active=false must deactivate the agent")
	}
}

func TestUpdateAgent_InvalidSettingsRejected(t *testing.T) {
	store := newMockAgentStore()
	store.agents["a1"] = &model.Agent{ID: "a1", OwnerID: testOwner, Name: "agent"}
	svc := NewService(store)

	_, err := svc.UpdateAgent(context.Background(), "a1", testOwner, &UpdateAgentRequest{
		Settings: &model.AgentSettings{Temperature: 3},
	})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("UpdateAgent() error = %v, want ErrInvalidInput", err)
	}
	if store.agents["a1"].Settings.Temperature != 0 {
		t.Error("invalid settings must not be persisted")
	}
}

func TestDeleteAgent_Cascade(t *testing.T) {
	store := newMockAgentStore()
	store.agents["a1"] = &model.Agent{ID: "a1", OwnerID: testOwner, Name: "agent"}
	svc := NewService(store)

	if err := svc.DeleteAgent(context.Background(), "a1", testOwner); err != nil {
		t.Fatalf("DeleteAgent() error = %v", err)
	}
	if len(store.cascadeDeleted) != 1 || store.cascadeDeleted[0] != "a1" {
		t.Errorf("cascadeDeleted = %v, want [a1]", store.cascadeDeleted)
	}
}

func TestDeleteAgent_NotFound(t *testing.T) {
	store := newMockAgentStore()
	svc := NewService(store)

	err := svc.DeleteAgent(context.Background(), "missing", testOwner)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("DeleteAgent() error = %v, want ErrNotFound", err)
	}
	if len(store.cascadeDeleted) != 0 {
		t.Error("cascade must not run for a missing agent")
	}
}
