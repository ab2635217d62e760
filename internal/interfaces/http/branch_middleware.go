package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gestaoloja/estoque-api/internal/application/dto"
	"github.com/gestaoloja/estoque-api/pkg/jwt"
)

// Locals keys para UserID, UserName e BranchID no Fiber.
const (
	LocalUserID   = "user_id"
	LocalUserName = "user_name"
	LocalBranchID = "branch_id"
)

// BranchMiddleware valida o Bearer Token JWT e extrai UserID, UserName e
// BranchID para c.Locals. Todo o escopo de dados das rotas protegidas vem
// da filial do token.
func BranchMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		userID, userName, branchID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		if branchID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token sem filial"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserName, userName)
		c.Locals(LocalBranchID, branchID)
		return c.Next()
	}
}

// GetUserID devolve o UserID do contexto (após o middleware).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetUserName devolve o UserName do contexto (após o middleware).
func GetUserName(c *fiber.Ctx) string {
	v := c.Locals(LocalUserName)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetBranchID devolve o BranchID do contexto (após o middleware).
func GetBranchID(c *fiber.Ctx) string {
	v := c.Locals(LocalBranchID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
