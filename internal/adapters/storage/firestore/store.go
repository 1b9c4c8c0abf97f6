package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ncolombo/taskpilot/internal/domain"
)

// Store implements domain.TaskStore and domain.ConversationStore on
// Firestore.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (TASKPILOT_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) tasksCol() *firestore.CollectionRef {
	return s.client.Collection("tasks")
}

func (s *Store) taskDoc(id domain.TaskID) *firestore.DocumentRef {
	return s.tasksCol().Doc(string(id))
}

func (s *Store) conversationsCol() *firestore.CollectionRef {
	return s.client.Collection("conversations")
}

func (s *Store) conversationDoc(id domain.ConversationID) *firestore.DocumentRef {
	return s.conversationsCol().Doc(string(id))
}

func (s *Store) messagesCol(id domain.ConversationID) *firestore.CollectionRef {
	return s.conversationDoc(id).Collection("messages")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type taskDoc struct {
	OwnerID   string     `firestore:"owner_id"`
	Title     string     `firestore:"title"`
	Completed bool       `firestore:"completed"`
	Priority  string     `firestore:"priority"`
	DueDate   *time.Time `firestore:"due_date"`
	Tags      string     `firestore:"tags"`
	CreatedAt time.Time  `firestore:"created_at"`
	UpdatedAt time.Time  `firestore:"updated_at"`
}

type conversationDoc struct {
	OwnerID   string    `firestore:"owner_id"`
	CreatedAt time.Time `firestore:"created_at"`
}

type messageDoc struct {
	ConversationID string    `firestore:"conversation_id"`
	Role           string    `firestore:"role"`
	Content        string    `firestore:"content"`
	CreatedAt      time.Time `firestore:"created_at"`
}

func (d taskDoc) toDomain(id domain.TaskID) *domain.Task {
	return &domain.Task{
		ID:        id,
		OwnerID:   domain.OwnerID(d.OwnerID),
		Title:     d.Title,
		Completed: d.Completed,
		Priority:  domain.Priority(d.Priority),
		DueDate:   d.DueDate,
		Tags:      d.Tags,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toTaskDoc(t *domain.Task) taskDoc {
	return taskDoc{
		OwnerID:   string(t.OwnerID),
		Title:     t.Title,
		Completed: t.Completed,
		Priority:  string(t.Priority),
		DueDate:   t.DueDate,
		Tags:      t.Tags,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ─────────────────────────────────────────
// TaskStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateTask(ctx context.Context, task *domain.Task) error {
	_, err := s.taskDoc(task.ID).Create(ctx, toTaskDoc(task))
	if err != nil {
		return domain.Wrap(domain.KindStorage, "firestore CreateTask", err)
	}
	return nil
}

func (s *Store) ListTasks(ctx context.Context, owner domain.OwnerID, completed *bool, order domain.TaskOrder) ([]*domain.Task, error) {
	q := s.tasksCol().Where("owner_id", "==", string(owner))
	if completed != nil {
		q = q.Where("completed", "==", *completed)
	}
	switch order {
	case domain.OrderCreatedDesc:
		q = q.OrderBy("created_at", firestore.Desc)
	default:
		q = q.OrderBy("created_at", firestore.Asc)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Task
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, domain.Wrap(domain.KindStorage, "firestore ListTasks", err)
		}

		var doc taskDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, domain.Wrap(domain.KindStorage, "decode taskDoc", err)
		}
		out = append(out, doc.toDomain(domain.TaskID(snap.Ref.ID)))
	}
	if out == nil {
		out = []*domain.Task{}
	}
	return out, nil
}

func (s *Store) GetTask(ctx context.Context, owner domain.OwnerID, id domain.TaskID) (*domain.Task, error) {
	snap, err := s.taskDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.E(domain.KindNotFound, "task not found")
		}
		return nil, domain.Wrap(domain.KindStorage, "firestore GetTask", err)
	}

	var doc taskDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, domain.Wrap(domain.KindStorage, "firestore GetTask decode", err)
	}
	if doc.OwnerID != string(owner) {
		// indistinguishable from absent
		return nil, domain.E(domain.KindNotFound, "task not found")
	}
	return doc.toDomain(id), nil
}

func (s *Store) UpdateTask(ctx context.Context, owner domain.OwnerID, id domain.TaskID, patch domain.TaskPatch) (*domain.Task, error) {
	t, err := s.GetTask(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		due := *patch.DueDate
		t.DueDate = &due
	}
	if patch.Tags != nil {
		t.Tags = *patch.Tags
	}
	if now := time.Now().UTC(); now.After(t.UpdatedAt) {
		t.UpdatedAt = now
	} else {
		t.UpdatedAt = t.UpdatedAt.Add(time.Nanosecond)
	}

	if _, err := s.taskDoc(id).Set(ctx, toTaskDoc(t)); err != nil {
		return nil, domain.Wrap(domain.KindStorage, "firestore UpdateTask", err)
	}
	return t, nil
}

func (s *Store) DeleteTask(ctx context.Context, owner domain.OwnerID, id domain.TaskID) (*domain.Task, error) {
	t, err := s.GetTask(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.taskDoc(id).Delete(ctx); err != nil {
		return nil, domain.Wrap(domain.KindStorage, "firestore DeleteTask", err)
	}
	return t, nil
}

// ─────────────────────────────────────────
// ConversationStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateConversation(ctx context.Context, owner domain.OwnerID) (*domain.Conversation, error) {
	conv := &domain.Conversation{
		ID:        domain.ConversationID(domain.NewID()),
		OwnerID:   owner,
		CreatedAt: time.Now().UTC(),
	}

	doc := conversationDoc{
		OwnerID:   string(conv.OwnerID),
		CreatedAt: conv.CreatedAt,
	}
	if _, err := s.conversationDoc(conv.ID).Create(ctx, doc); err != nil {
		return nil, domain.Wrap(domain.KindStorage, "firestore CreateConversation", err)
	}
	return conv, nil
}

func (s *Store) AppendMessage(ctx context.Context, msg *domain.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if _, err := s.conversationDoc(msg.ConversationID).Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.E(domain.KindNotFound, "conversation not found")
		}
		return domain.Wrap(domain.KindStorage, "firestore AppendMessage", err)
	}

	doc := messageDoc{
		ConversationID: string(msg.ConversationID),
		Role:           string(msg.Role),
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	}
	if _, err := s.messagesCol(msg.ConversationID).Doc(string(msg.ID)).Set(ctx, doc); err != nil {
		return domain.Wrap(domain.KindStorage, "firestore AppendMessage", err)
	}
	return nil
}

func (s *Store) History(ctx context.Context, id domain.ConversationID, owner domain.OwnerID) ([]*domain.Message, error) {
	snap, err := s.conversationDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.E(domain.KindNotFound, "conversation not found")
		}
		return nil, domain.Wrap(domain.KindStorage, "firestore History", err)
	}

	var conv conversationDoc
	if err := snap.DataTo(&conv); err != nil {
		return nil, domain.Wrap(domain.KindStorage, "firestore History decode", err)
	}
	if conv.OwnerID != string(owner) {
		return nil, domain.E(domain.KindNotFound, "conversation not found")
	}

	iter := s.messagesCol(id).OrderBy("created_at", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	out := []*domain.Message{}
	for {
		msnap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, domain.Wrap(domain.KindStorage, "firestore History messages", err)
		}

		var doc messageDoc
		if err := msnap.DataTo(&doc); err != nil {
			return nil, domain.Wrap(domain.KindStorage, "decode messageDoc", err)
		}

		out = append(out, &domain.Message{
			ID:             domain.MessageID(msnap.Ref.ID),
			ConversationID: id,
			Role:           domain.Role(doc.Role),
			Content:        doc.Content,
			CreatedAt:      doc.CreatedAt,
		})
	}
	return out, nil
}
