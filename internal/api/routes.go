// Package api exposes the HTTP surface: health, the static chat page, the
// activity-log dashboard and the WebSocket upgrade endpoint.
package api

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hanifmaulana/aivoicebot/internal/chatlog"
	"github.com/hanifmaulana/aivoicebot/internal/websocket"
	"github.com/hanifmaulana/aivoicebot/usecase"
)

// recentLogLimit is how many records the dashboard fetches per refresh.
const recentLogLimit = 100

// Deps carries everything the HTTP handlers need.
type Deps struct {
	Hub       *websocket.Hub
	Router    *websocket.Router
	Gateway   *usecase.Gateway
	Voice     *usecase.VoiceService
	ChatLog   *chatlog.ChatLogger
	StaticDir string
	Logger    *zap.Logger
}

// RegisterTransport attaches the WebSocket endpoint and a health probe to
// the message transport listener.
func RegisterTransport(e *echo.Echo, deps Deps) {
	e.GET("/health", func(c echo.Context) error {
		return healthResponse(c, deps)
	})
	e.GET("/ws", deps.Router.ServeWS)
}

// RegisterDashboard attaches the static chat page and the log dashboard to
// the HTTP listener.
func RegisterDashboard(e *echo.Echo, deps Deps) {
	e.GET("/health", func(c echo.Context) error {
		return healthResponse(c, deps)
	})

	e.File("/", filepath.Join(deps.StaticDir, "index.html"))
	e.File("/index.html", filepath.Join(deps.StaticDir, "index.html"))
	e.Static("/static", deps.StaticDir)

	e.GET("/logs", serveLogsDashboard)
	e.GET("/logs/recent", func(c echo.Context) error {
		logs, err := deps.ChatLog.Recent(recentLogLimit)
		if err != nil {
			deps.Logger.Error("Failed to read recent logs", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, []string{})
		}
		return c.JSON(http.StatusOK, logs)
	})
	e.GET("/logs/summary", func(c echo.Context) error {
		summary, err := deps.ChatLog.Summarize()
		if err != nil {
			deps.Logger.Error("Failed to summarize logs", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, map[string]string{})
		}
		return c.JSON(http.StatusOK, summary)
	})
	e.POST("/logs/clear", func(c echo.Context) error {
		if err := deps.ChatLog.Clear(); err != nil {
			deps.Logger.Error("Failed to clear logs", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"status": "error", "message": err.Error(),
			})
		}
		deps.Logger.Info("Logs cleared")
		return c.JSON(http.StatusOK, map[string]string{
			"status": "success", "message": "Logs cleared successfully",
		})
	})
	e.GET("/logs/export", func(c echo.Context) error {
		data, err := deps.ChatLog.ExportCSV()
		if err != nil {
			deps.Logger.Error("Failed to export logs", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"status": "error", "message": err.Error(),
			})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="ai_voice_bot_logs.csv"`)
		return c.Blob(http.StatusOK, "text/csv", data)
	})

	e.GET("/cache/stats", func(c echo.Context) error {
		return c.JSON(http.StatusOK, deps.Voice.CacheStats())
	})
}

func healthResponse(c echo.Context, deps Deps) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"service":         "AI Voice Bot",
		"websocket_ready": deps.Gateway.Ready(),
		"active_sessions": deps.Hub.SessionCount(),
	})
}

func serveLogsDashboard(c echo.Context) error {
	return c.HTML(http.StatusOK, logsDashboardHTML)
}
