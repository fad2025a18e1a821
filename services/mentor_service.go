package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/mentor-boot/db"
	"github.com/SaiNageswarS/mentor-boot/memory"
	"github.com/SaiNageswarS/mentor-boot/mentor"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// VolunteerHeader carries the authenticated volunteer id set by the gateway.
const VolunteerHeader = "X-Volunteer-Id"

type Mentor interface {
	Chat(ctx context.Context, req mentor.ChatRequest) (*mentor.ChatResponse, error)
	Roadmap(ctx context.Context, req mentor.RoadmapRequest) *mentor.RoadmapResponse
	Messages(ctx context.Context, conversationID string) ([]db.MessageModel, error)
}

type MentorService struct {
	mentor Mentor
}

func ProvideMentorService(m Mentor) *MentorService {
	return &MentorService{mentor: m}
}

// MountRoutes mounts the mentor API on r.
func (s *MentorService) MountRoutes(r gin.IRouter) {
	g := r.Group("/api/mentor", requireVolunteer)

	g.POST("/chat", s.chat)
	g.POST("/roadmap", s.roadmap)
	g.GET("/conversations/:conversationId/messages", s.messages)
}

// requireVolunteer rejects mentor calls that carry no caller identity.
func requireVolunteer(c *gin.Context) {
	if strings.TrimSpace(c.GetHeader(VolunteerHeader)) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"code":  "unauthenticated",
			"error": VolunteerHeader + " header is required",
		})
		return
	}
	c.Next()
}

func (s *MentorService) chat(c *gin.Context) {
	var req mentor.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "validation_error", "error": err.Error()})
		return
	}
	req.VolunteerID = c.GetHeader(VolunteerHeader)

	resp, err := s.mentor.Chat(c.Request.Context(), req)
	if err != nil {
		var turnErr *mentor.TurnError
		if errors.As(err, &turnErr) {
			logger.Error("Mentor turn failed", zap.String("conversationId", turnErr.ConversationID), zap.Error(err))
			c.JSON(httpStatus(err), gin.H{
				"code":           "upstream_error",
				"error":          memory.ErrorNotice,
				"conversationId": turnErr.ConversationID,
			})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *MentorService) roadmap(c *gin.Context) {
	var req mentor.RoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "validation_error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, s.mentor.Roadmap(c.Request.Context(), req))
}

func (s *MentorService) messages(c *gin.Context) {
	messages, err := s.mentor.Messages(c.Request.Context(), c.Param("conversationId"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func handleError(c *gin.Context, err error) {
	code := httpStatus(err)
	if code == http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(code, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(code, gin.H{"code": errorCode(err), "error": status.Convert(err).Message()})
}

func httpStatus(err error) int {
	switch status.Code(err) {
	case codes.NotFound:
		return http.StatusNotFound
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.Unavailable:
		return http.StatusBadGateway
	case codes.Canceled:
		return 499
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(err error) string {
	switch status.Code(err) {
	case codes.NotFound:
		return "not_found"
	case codes.InvalidArgument:
		return "validation_error"
	case codes.Unauthenticated:
		return "unauthenticated"
	case codes.Unavailable:
		return "upstream_error"
	default:
		return "error"
	}
}
