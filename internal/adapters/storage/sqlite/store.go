package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ncolombo/taskpilot/internal/domain"
)

// Store implements domain.TaskStore and domain.ConversationStore on
// SQLite with WAL mode. Ownership is enforced in every WHERE clause.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates and initializes the SQLite database at dbPath.
func Open(dbPath string) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite db path is empty")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	s := &Store{db: db, path: dbPath}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL,
		title      TEXT NOT NULL,
		completed  INTEGER NOT NULL DEFAULT 0,
		priority   TEXT NOT NULL DEFAULT 'medium',
		due_date   TEXT,
		tags       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS conversations (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS messages (
		id              TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		role            TEXT NOT NULL,
		content         TEXT NOT NULL,
		created_at      TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id);
	CREATE INDEX IF NOT EXISTS idx_conversations_owner ON conversations(owner_id);
	CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Fixed-width fractional seconds: RFC3339Nano trims trailing zeros,
// which breaks lexicographic ordering of the TEXT columns ("10Z"
// would sort after "10.5Z").
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func decodeTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// --- TaskStore ---

func (s *Store) CreateTask(ctx context.Context, task *domain.Task) error {
	var due sql.NullString
	if task.DueDate != nil {
		due = sql.NullString{String: encodeTime(*task.DueDate), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, owner_id, title, completed, priority, due_date, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(task.ID), string(task.OwnerID), task.Title, boolToInt(task.Completed),
		string(task.Priority), due, task.Tags,
		encodeTime(task.CreatedAt), encodeTime(task.UpdatedAt),
	)
	if err != nil {
		return domain.Wrap(domain.KindStorage, "sqlite insert task", err)
	}
	return nil
}

func (s *Store) ListTasks(ctx context.Context, owner domain.OwnerID, completed *bool, order domain.TaskOrder) ([]*domain.Task, error) {
	q := `SELECT id, owner_id, title, completed, priority, due_date, tags, created_at, updated_at
		FROM tasks WHERE owner_id = ?`
	args := []any{string(owner)}
	if completed != nil {
		q += " AND completed = ?"
		args = append(args, boolToInt(*completed))
	}
	switch order {
	case domain.OrderCreatedDesc:
		q += " ORDER BY created_at DESC, rowid DESC"
	default:
		q += " ORDER BY rowid ASC"
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.Wrap(domain.KindStorage, "sqlite list tasks", err)
	}
	defer rows.Close()

	out := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, domain.Wrap(domain.KindStorage, "sqlite scan task", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Wrap(domain.KindStorage, "sqlite list tasks", err)
	}
	return out, nil
}

func (s *Store) GetTask(ctx context.Context, owner domain.OwnerID, id domain.TaskID) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, completed, priority, due_date, tags, created_at, updated_at
		FROM tasks WHERE id = ? AND owner_id = ?`,
		string(id), string(owner))

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.E(domain.KindNotFound, "task not found")
	}
	if err != nil {
		return nil, domain.Wrap(domain.KindStorage, "sqlite get task", err)
	}
	return t, nil
}

func (s *Store) UpdateTask(ctx context.Context, owner domain.OwnerID, id domain.TaskID, patch domain.TaskPatch) (*domain.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.Wrap(domain.KindStorage, "sqlite begin tx", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT id, owner_id, title, completed, priority, due_date, tags, created_at, updated_at
		FROM tasks WHERE id = ? AND owner_id = ?`,
		string(id), string(owner))

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.E(domain.KindNotFound, "task not found")
	}
	if err != nil {
		return nil, domain.Wrap(domain.KindStorage, "sqlite load task", err)
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

	var due sql.NullString
	if t.DueDate != nil {
		due = sql.NullString{String: encodeTime(*t.DueDate), Valid: true}
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE tasks SET title = ?, completed = ?, priority = ?, due_date = ?, tags = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		t.Title, boolToInt(t.Completed), string(t.Priority), due, t.Tags, encodeTime(t.UpdatedAt),
		string(id), string(owner))
	if err != nil {
		return nil, domain.Wrap(domain.KindStorage, "sqlite update task", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.Wrap(domain.KindStorage, "sqlite commit", err)
	}
	return t, nil
}

func (s *Store) DeleteTask(ctx context.Context, owner domain.OwnerID, id domain.TaskID) (*domain.Task, error) {
	t, err := s.GetTask(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND owner_id = ?`,
		string(id), string(owner))
	if err != nil {
		return nil, domain.Wrap(domain.KindStorage, "sqlite delete task", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.E(domain.KindNotFound, "task not found")
	}
	return t, nil
}

// --- ConversationStore ---

func (s *Store) CreateConversation(ctx context.Context, owner domain.OwnerID) (*domain.Conversation, error) {
	conv := &domain.Conversation{
		ID:        domain.ConversationID(domain.NewID()),
		OwnerID:   owner,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (id, owner_id, created_at) VALUES (?, ?, ?)`,
		string(conv.ID), string(conv.OwnerID), encodeTime(conv.CreatedAt))
	if err != nil {
		return nil, domain.Wrap(domain.KindStorage, "sqlite insert conversation", err)
	}
	return conv, nil
}

func (s *Store) AppendMessage(ctx context.Context, msg *domain.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM conversations WHERE id = ?`,
		string(msg.ConversationID)).Scan(&exists)
	if err != nil {
		return domain.Wrap(domain.KindStorage, "sqlite check conversation", err)
	}
	if exists == 0 {
		return domain.E(domain.KindNotFound, "conversation not found")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		string(msg.ID), string(msg.ConversationID), string(msg.Role), msg.Content,
		encodeTime(msg.CreatedAt))
	if err != nil {
		return domain.Wrap(domain.KindStorage, "sqlite insert message", err)
	}
	return nil
}

func (s *Store) History(ctx context.Context, id domain.ConversationID, owner domain.OwnerID) ([]*domain.Message, error) {
	var ownerID string
	err := s.db.QueryRowContext(ctx,
		`SELECT owner_id FROM conversations WHERE id = ?`,
		string(id)).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.E(domain.KindNotFound, "conversation not found")
	}
	if err != nil {
		return nil, domain.Wrap(domain.KindStorage, "sqlite get conversation", err)
	}
	if ownerID != string(owner) {
		// wrong owner reported exactly like a missing conversation
		return nil, domain.E(domain.KindNotFound, "conversation not found")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, role, content, created_at FROM messages
		WHERE conversation_id = ? ORDER BY created_at ASC, rowid ASC`,
		string(id))
	if err != nil {
		return nil, domain.Wrap(domain.KindStorage, "sqlite list messages", err)
	}
	defer rows.Close()

	out := make([]*domain.Message, 0)
	for rows.Next() {
		var msgID, role, content, createdAt string
		if err := rows.Scan(&msgID, &role, &content, &createdAt); err != nil {
			return nil, domain.Wrap(domain.KindStorage, "sqlite scan message", err)
		}
		out = append(out, &domain.Message{
			ID:             domain.MessageID(msgID),
			ConversationID: id,
			Role:           domain.Role(role),
			Content:        content,
			CreatedAt:      decodeTime(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Wrap(domain.KindStorage, "sqlite list messages", err)
	}
	return out, nil
}

// --- helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (*domain.Task, error) {
	var (
		id, ownerID, title, priority, tags string
		completed                          int
		due                                sql.NullString
		createdAt, updatedAt               string
	)
	if err := r.Scan(&id, &ownerID, &title, &completed, &priority, &due, &tags, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	t := &domain.Task{
		ID:        domain.TaskID(id),
		OwnerID:   domain.OwnerID(ownerID),
		Title:     title,
		Completed: completed != 0,
		Priority:  domain.Priority(priority),
		Tags:      tags,
		CreatedAt: decodeTime(createdAt),
		UpdatedAt: decodeTime(updatedAt),
	}
	if due.Valid {
		d := decodeTime(due.String)
		t.DueDate = &d
	}
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
