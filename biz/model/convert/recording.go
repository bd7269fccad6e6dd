package convert

import (
	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/storage"
)

func SessionRecordToDomain(m *storage.RecordingSessionRecord) *domain.RecordingSession {
	if m == nil {
		return nil
	}
	return &domain.RecordingSession{
		UserID:     m.UserId,
		SessionID:  m.SessionId,
		ChunkCount: m.ChunkCount,
		CreatedAt:  m.CreatedAt,
	}
}

func SessionRecordsToDomain(ms []storage.RecordingSessionRecord) []*domain.RecordingSession {
	out := make([]*domain.RecordingSession, 0, len(ms))
	for i := range ms {
		out = append(out, SessionRecordToDomain(&ms[i]))
	}
	return out
}

func AttemptDomainToRecord(a *domain.LoginAttempt) *storage.LoginAttemptRecord {
	if a == nil {
		return nil
	}
	return &storage.LoginAttemptRecord{
		Email:       a.Email,
		AttemptTime: a.AttemptTime,
		Success:     a.Success,
		IPAddress:   a.IPAddress,
	}
}
