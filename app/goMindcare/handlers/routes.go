package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes binds the API surface onto the engine.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")
	api.Use(SessionCookie())
	{
		api.POST("/mood/quick", h.QuickMood)
		api.POST("/mood/assess", h.Assess)
		api.POST("/mood/analyze", h.AnalyzeText)
		api.GET("/mood/history", h.History)
		api.GET("/mood/stats", h.Stats)
		api.GET("/mood/insights", h.Insights)

		api.POST("/voice/start", h.VoiceStart)
		api.POST("/voice/stop", h.VoiceStop)
		api.POST("/voice/analyze", h.VoiceAnalyze)
		api.POST("/voice/save", h.VoiceSave)

		api.POST("/journal", h.JournalSave)
		api.GET("/journal", h.JournalList)

		api.GET("/profile", h.ProfileGet)
		api.PUT("/profile", h.ProfileSave)

		api.GET("/export", h.Export)
		api.POST("/sample-data", h.SampleData)
	}

	r.GET("/ws", h.Websocket)

	r.GET("/ping", h.Ping)
}
