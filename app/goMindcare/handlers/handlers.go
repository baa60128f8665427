// Package handlers exposes the dashboard's HTTP API.
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mindcareapp/goMindcare/business/events"
	"github.com/mindcareapp/goMindcare/business/session"
	"github.com/mindcareapp/goMindcare/business/tracker"
	"github.com/mindcareapp/goMindcare/foundation/store"
)

// defaultUser is the single-user fallback when no X-User-ID header is sent.
const defaultUser = "local"

// maxUploadBytes caps WAV uploads at 10MB.
const maxUploadBytes = 10 << 20

type Handlers struct {
	Tracker  *tracker.Tracker
	Sessions *session.Manager
	Hub      *events.Hub
	Log      *zap.SugaredLogger

	upgrader websocket.Upgrader
}

func New(tr *tracker.Tracker, sessions *session.Manager, hub *events.Hub, log *zap.SugaredLogger) *Handlers {
	return &Handlers{
		Tracker:  tr,
		Sessions: sessions,
		Hub:      hub,
		Log:      log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handlers) userID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return defaultUser
}

func (h *Handlers) session(c *gin.Context) *session.Session {
	return h.Sessions.Get(c.GetString("sessionID"))
}

// fail maps domain sentinels to 400s and everything else to a 500.
func (h *Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tracker.ErrInvalidScore),
		errors.Is(err, tracker.ErrUnknownMood),
		errors.Is(err, tracker.ErrNotRecording),
		errors.Is(err, tracker.ErrAlreadyRecording),
		errors.Is(err, tracker.ErrNoPendingAnalysis),
		errors.Is(err, store.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		h.Log.Errorw("handlers: request failed", "path", c.Request.URL.Path, "ERROR", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// =====================================================================================================================
// Mood

func (h *Handlers) QuickMood(c *gin.Context) {
	var req struct {
		Kind string `json:"kind" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Tracker.QuickLog(h.userID(c), h.session(c), req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *Handlers) Assess(c *gin.Context) {
	var req tracker.Assessment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Tracker.Assess(h.userID(c), h.session(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *Handlers) AnalyzeText(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Tracker.AnalyzeText(req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handlers) History(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.Tracker.History(h.userID(c))})
}

func (h *Handlers) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Tracker.Stats(h.userID(c)))
}

func (h *Handlers) Insights(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"insights": h.Tracker.Insights(h.userID(c))})
}

func (h *Handlers) SampleData(c *gin.Context) {
	var req struct {
		Days int `json:"days"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Days <= 0 {
		req.Days = 30
	}

	written, err := h.Tracker.GenerateSampleData(h.userID(c), h.session(c), req.Days)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entries": written})
}

// =====================================================================================================================
// Voice

func (h *Handlers) VoiceStart(c *gin.Context) {
	if err := h.Tracker.StartRecording(h.session(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recording": true})
}

func (h *Handlers) VoiceStop(c *gin.Context) {
	analysis, err := h.Tracker.StopRecording(h.session(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// VoiceAnalyze accepts WAV audio either as a multipart "audio" file or as
// the raw request body.
func (h *Handlers) VoiceAnalyze(c *gin.Context) {
	data, err := h.wavUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	classification := h.Tracker.AnalyzeVoice(h.session(c), data)
	c.JSON(http.StatusOK, classification)
}

func (h *Handlers) wavUpload(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("audio"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxUploadBytes))
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("no audio uploaded")
	}
	return data, nil
}

func (h *Handlers) VoiceSave(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
		Score int    `json:"score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Tracker.SaveVoiceAnalysis(h.userID(c), h.session(c), req.Notes, req.Score)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// =====================================================================================================================
// Journal, profile, export

func (h *Handlers) JournalSave(c *gin.Context) {
	var req tracker.JournalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Tracker.SaveJournal(h.userID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *Handlers) JournalList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.Tracker.Journal(h.userID(c))})
}

func (h *Handlers) ProfileGet(c *gin.Context) {
	c.JSON(http.StatusOK, h.Tracker.Profile(h.userID(c)))
}

func (h *Handlers) ProfileSave(c *gin.Context) {
	var req store.UserProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Tracker.SaveProfile(h.userID(c), req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, req)
}

// Export returns both CSV documents as JSON, or one of them as text/csv
// when ?table=mood or ?table=journal is given.
func (h *Handlers) Export(c *gin.Context) {
	moodCSV, journalCSV, err := h.Tracker.Export(h.userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	switch c.Query("table") {
	case "mood":
		c.Header("Content-Disposition", `attachment; filename="mood_data.csv"`)
		c.Data(http.StatusOK, "text/csv", []byte(moodCSV))
	case "journal":
		c.Header("Content-Disposition", `attachment; filename="journal_entries.csv"`)
		c.Data(http.StatusOK, "text/csv", []byte(journalCSV))
	default:
		c.JSON(http.StatusOK, gin.H{"mood_csv": moodCSV, "journal_csv": journalCSV})
	}
}

// =====================================================================================================================
// Live feed

// Websocket upgrades the connection and attaches it to the event hub. The
// read loop exists only to notice the client going away.
func (h *Handlers) Websocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Errorw("handlers: websocket upgrade", "ERROR", err)
		return
	}

	h.Hub.Attach(conn)

	go func() {
		defer func() {
			h.Hub.Detach(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Handlers) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
