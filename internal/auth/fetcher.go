package auth

import (
	"time"

	"github.com/CivicAgenda/CA-Backend/internal/db"
	"github.com/CivicAgenda/CA-Backend/internal/utils"
)

type SessionInfo struct{}

func (si SessionInfo) FindSessionByID(id string) (utils.SessionData, error) {
	var session Session

	err := db.DB.First(&session, "session_id = ?", id).Error
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// ExtendSession slides an active session's expiry forward. Called by the
// session middleware once a session is past its half-life.
func (si SessionInfo) ExtendSession(id string, until time.Time) error {
	return db.DB.Model(&Session{}).Where("session_id = ?", id).
		Update("expires_at", until).Error
}
