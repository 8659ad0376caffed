package controller

import (
	"errors"
	"fmt"
	"time"

	"chat-service/config"
	"chat-service/database"
	"chat-service/store"
	"chat-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pquerna/otp/totp"
)

type AuthSignupInput struct {
	Phone    string `json:"phone"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type AuthLoginInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type AuthOtpSecretInput struct {
	Password string `json:"password"`
}

type AuthOtpVerifyInput struct {
	Token string `json:"token"`
}

type AuthOtpValidateInput struct {
	Token string `json:"token"`
}

type AuthOtpDisableInput struct {
	Password string `json:"password"`
	Token    string `json:"token"`
}

func otpIssuer() string {
	if issuer := config.Config("OTP_ISSUER"); issuer != "" {
		return issuer
	}
	return "chat-service"
}

func AuthSignup(c *fiber.Ctx) error {
	input := new(AuthSignupInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	// Generate the TOTP secret up front; 2FA stays off until verified.
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      otpIssuer(),
		AccountName: input.Username,
		SecretSize:  15,
	})
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	user, err := Store.RegisterUser(input.Phone, input.Username, input.Name, input.Password, key.Secret())
	if err != nil {
		return storeError(c, err)
	}

	return success(c, fiber.Map{
		"id": user.ID,
	})
}

func AuthSignin(c *fiber.Ctx) error {
	input := new(AuthLoginInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	user, err := Store.Authenticate(input.Login, input.Password)
	if err != nil {
		// Unknown login and wrong password look the same to the caller.
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidCredentials) {
			return fail(c, fiber.StatusUnauthorized, "Invalid login or password")
		}
		return storeError(c, err)
	}

	token, err := utils.GenerateToken(user, user.Otp_enabled)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return success(c, fiber.Map{
		"token": token,
		"2fa":   user.Otp_enabled,
	})
}

func AuthSignout(c *fiber.Ctx) error {
	meta := session(c)
	token := c.Locals("user").(*jwt.Token)

	if err := Store.SetOffline(meta.Id); err != nil {
		return storeError(c, err)
	}

	// The token stays on the revocation list until its own expiry.
	ttl := time.Until(time.Unix(meta.Exp, 0))
	if err := store.NewTokenRevoker(database.Redis).Revoke(token.Raw, ttl); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return success(c, nil)
}

func AuthOtpSecret(c *fiber.Ctx) error {
	input := new(AuthOtpSecretInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	meta := session(c)
	if err := Store.CheckPassword(meta.Id, input.Password); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid password")
	}

	user, err := Store.GetUser(meta.Id)
	if err != nil {
		return storeError(c, err)
	}

	return success(c, fiber.Map{
		"secret": user.Otp_secret,
		"url": fmt.Sprintf("otpauth://totp/%s:%s?algorithm=SHA1&digits=6&issuer=%s&period=30&secret=%s",
			otpIssuer(),
			user.Username,
			otpIssuer(),
			user.Otp_secret,
		),
	})
}

func AuthOtpVerify(c *fiber.Ctx) error {
	input := new(AuthOtpVerifyInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	meta := session(c)
	user, err := Store.GetUser(meta.Id)
	if err != nil {
		return storeError(c, err)
	}

	if user.Otp_enabled {
		return fail(c, fiber.StatusBadRequest, "Verification has already been performed earlier")
	}

	if !totp.Validate(input.Token, user.Otp_secret) {
		return fail(c, fiber.StatusBadRequest, "Invalid token")
	}

	if err := Store.SetOtpEnabled(user.ID, true); err != nil {
		return storeError(c, err)
	}

	return success(c, nil)
}

func AuthOtpValidate(c *fiber.Ctx) error {
	input := new(AuthOtpValidateInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	meta := session(c)
	user, err := Store.GetUser(meta.Id)
	if err != nil {
		return storeError(c, err)
	}

	if !user.Otp_enabled {
		return fail(c, fiber.StatusBadRequest, "2FA has been disabled")
	}

	if !totp.Validate(input.Token, user.Otp_secret) {
		return fail(c, fiber.StatusBadRequest, "Invalid token")
	}

	token, err := utils.GenerateToken(user, false)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return success(c, fiber.Map{
		"token": token,
	})
}

func AuthOtpDisable(c *fiber.Ctx) error {
	input := new(AuthOtpDisableInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	meta := session(c)
	user, err := Store.GetUser(meta.Id)
	if err != nil {
		return storeError(c, err)
	}

	if !user.Otp_enabled {
		return fail(c, fiber.StatusBadRequest, "2fa not enabled")
	}

	if err := Store.CheckPassword(user.ID, input.Password); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid password")
	}

	if !totp.Validate(input.Token, user.Otp_secret) {
		return fail(c, fiber.StatusBadRequest, "Invalid token")
	}

	if err := Store.SetOtpEnabled(user.ID, false); err != nil {
		return storeError(c, err)
	}

	return success(c, nil)
}
