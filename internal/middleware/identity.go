package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/kindermind/scheduler/internal/domain/appointment"
)

const ContextActor = "actor"

// IdentityMiddleware lifts the caller's account ids from the trusted
// gateway headers into the request context. Authentication itself
// happens upstream; this service only consumes the resolved identity.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := domain.Actor{
			ParentID:       headerUint(c, "X-Parent-ID"),
			PsychologistID: headerUint(c, "X-Psychologist-ID"),
		}

		c.Set(ContextActor, actor)
		c.Next()
	}
}

// ActorFrom returns the actor resolved for this request.
func ActorFrom(c *gin.Context) domain.Actor {
	if v, ok := c.Get(ContextActor); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Actor{}
}

func headerUint(c *gin.Context, key string) uint {
	v := c.GetHeader(key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}
