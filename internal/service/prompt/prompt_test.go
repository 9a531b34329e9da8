package prompt

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/mingyue-ai/agenthub/internal/apperrors"
	"github.com/mingyue-ai/agenthub/internal/model"
)

type mockAgentStore struct {
	agents map[string]*model.Agent
}

func (m *mockAgentStore) GetByID(id, ownerID string) (*model.Agent, error) {
	if agent, ok := m.agents[id]; ok && agent.OwnerID == ownerID {
		return agent, nil
	}
	return nil, apperrors.NotFoundf("agent %s not found", id)
}

// mockPromptStore 按仓库层契约实现 upsert：同一 Agent 的 upsert 串行执行
// （仓库层靠 advisory 锁 + FOR UPDATE 保证），单 Agent 单 active，
// 首次插入 version=1，之后覆盖文本并递增 version
type mockPromptStore struct {
	mu      sync.Mutex
	prompts map[string]*model.Prompt // agentID -> active prompt
	nextID  int
}

func newMockPromptStore() *mockPromptStore {
	return &mockPromptStore{prompts: make(map[string]*model.Prompt)}
}

func (m *mockPromptStore) GetActive(agentID, ownerID string) (*model.Prompt, error) {
	if prompt, ok := m.prompts[agentID]; ok && prompt.OwnerID == ownerID {
		return prompt, nil
	}
	return nil, apperrors.NotFoundf("no active prompt for agent %s", agentID)
}

func (m *mockPromptStore) UpsertActive(agentID, ownerID, systemPrompt string) (*model.Prompt, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.prompts[agentID]; ok && existing.OwnerID == ownerID {
		existing.SystemPrompt = systemPrompt
		existing.Version++
		return existing, false, nil
	}
	m.nextID++
	prompt := &model.Prompt{
		ID:           "prompt-" + string(rune('0'+m.nextID)),
		AgentID:      agentID,
		OwnerID:      ownerID,
		SystemPrompt: systemPrompt,
		IsActive:     true,
		Version:      1,
	}
	m.prompts[agentID] = prompt
	return prompt, true, nil
}

const (
	testOwner = "owner-1"
	testAgent = "agent-1"
)

func newService() (*Service, *mockPromptStore) {
	agents := &mockAgentStore{agents: map[string]*model.Agent{
		testAgent: {ID: testAgent, OwnerID: testOwner, Name: "test agent"},
	}}
	prompts := newMockPromptStore()
	return NewService(agents, prompts), prompts
}

func TestGetActivePrompt_AgentNotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetActivePrompt(context.Background(), "missing", testOwner)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetActivePrompt() error = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "agent") {
		t.Errorf("GetActivePrompt() error = %q, want agent mentioned", err.Error())
	}
}

func TestGetActivePrompt_NoActivePrompt(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetActivePrompt(context.Background(), testAgent, testOwner)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetActivePrompt() error = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "prompt") {
		t.Errorf("GetActivePrompt() error = %q, want prompt mentioned", err.Error())
	}
}

func TestCreateOrUpdatePrompt_EmptyText(t *testing.T) {
	svc, _ := newService()

	_, err := svc.CreateOrUpdatePrompt(context.Background(), testAgent, testOwner, "  \n ")
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("CreateOrUpdatePrompt() error = %v, want ErrInvalidInput", err)
	}
}

func TestCreateOrUpdatePrompt_TooLong(t *testing.T) {
	svc, _ := newService()

	_, err := svc.CreateOrUpdatePrompt(context.Background(), testAgent, testOwner, strings.Repeat("x", 5001))
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("CreateOrUpdatePrompt() error = %v, want ErrInvalidInput", err)
	}
}

func TestCreateOrUpdatePrompt_AgentNotFound(t *testing.T) {
	svc, store := newService()

	_, err := svc.CreateOrUpdatePrompt(context.Background(), "missing", testOwner, "You are helpful.")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("CreateOrUpdatePrompt() error = %v, want ErrNotFound", err)
	}
	if len(store.prompts) != 0 {
		t.Error("no prompt may be written for a missing agent")
	}
}

func TestCreateOrUpdatePrompt_FirstCreateThenUpdate(t *testing.T) {
	svc, store := newService()

	first, err := svc.CreateOrUpdatePrompt(context.Background(), testAgent, testOwner, "You are helpful.")
	if err != nil {
		t.Fatalf("CreateOrUpdatePrompt() error = %v", err)
	}
	if !first.Created {
		t.Error("first upsert must report created=true")
	}
	if first.Prompt.Version != 1 {
		t.Errorf("first version = %d, want 1", first.Prompt.Version)
	}
	if !first.Prompt.IsActive {
		t.Error("created prompt must be active")
	}

	second, err := svc.CreateOrUpdatePrompt(context.Background(), testAgent, testOwner, "You are terse.")
	if err != nil {
		t.Fatalf("CreateOrUpdatePrompt() error = %v", err)
	}
	if second.Created {
		t.Error("second upsert must report created=false")
	}
	if second.Prompt.Version != 2 {
		t.Errorf("second version = %d, want 2", second.Prompt.Version)
	}
	if second.Prompt.ID != first.Prompt.ID {
		t.Error("upsert must reuse the same record, not insert another")
	}
	if second.Prompt.SystemPrompt != "You are terse." {
		t.Errorf("prompt text = %q, want the new text", second.Prompt.SystemPrompt)
	}
	if len(store.prompts) != 1 {
		t.Fatalf("store holds %d prompts, want a single active row", len(store.prompts))
	}
}

func TestCreateOrUpdatePrompt_RepeatedUpdatesBumpVersion(t *testing.T) {
	svc, _ := newService()

	var last *UpsertResult
	for i := 0; i < 4; i++ {
		result, err := svc.CreateOrUpdatePrompt(context.Background(), testAgent, testOwner, "version text")
		if err != nil {
			t.Fatalf("CreateOrUpdatePrompt() #%d error = %v", i, err)
		}
		last = result
	}
	if last.Prompt.Version != 4 {
		t.Errorf("version after 4 upserts = %d, want 4", last.Prompt.Version)
	}
}

func TestCreateOrUpdatePrompt_ConcurrentUpserts(t *testing.T) {
	svc, store := newService()

	const writers = 8
	var wg sync.WaitGroup
	var createdCount int32
	var mu sync.Mutex

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.CreateOrUpdatePrompt(context.Background(), testAgent, testOwner, "concurrent text")
			if err != nil {
				t.Errorf("CreateOrUpdatePrompt() #%d error = %v", i, err)
				return
			}
			if result.Created {
				mu.Lock()
				createdCount++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	// 并发首次 upsert 也只能产生一条 active 记录，version 递增一个不丢
	if len(store.prompts) != 1 {
		t.Fatalf("store holds %d prompts, want a single active row", len(store.prompts))
	}
	if createdCount != 1 {
		t.Errorf("created reported %d times, want exactly once", createdCount)
	}
	if got := store.prompts[testAgent].Version; got != writers {
		t.Errorf("version = %d, want %d (no lost bumps)", got, writers)
	}
}
