package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"vitalitygo/config"
	"vitalitygo/db"
	"vitalitygo/structs"
	"vitalitygo/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// AuthController owns the Cognito sign-up/sign-in flows and account
// lifecycle operations.
type AuthController struct {
	cfg *config.Config
}

func NewAuthController(cfg *config.Config) *AuthController {
	return &AuthController{cfg: cfg}
}

func (a *AuthController) SignUp(ctx *gin.Context) {
	var request structs.SignUpRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	if err := a.signUpWithCognito(ctx, request.Email, request.Password, request.Name); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign up", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sign-up successful"})
}

func (a *AuthController) VerifyEmail(ctx *gin.Context) {
	var request structs.VerifyEmailRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	if err := a.verifyEmailWithCognito(ctx, request.Email, request.ConfirmationCode); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Email verification successful"})
}

func (a *AuthController) Login(ctx *gin.Context) {
	var request structs.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "Check email and password format"})
		return
	}

	token, err := a.loginWithCognito(ctx, request.Email, request.Password)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to sign in", "message": "Invalid email or password"})
		return
	}

	a.ensureProfileAndCountLogin(ctx, token)

	ctx.JSON(http.StatusOK, gin.H{"message": "Sign-in successful", "accessToken": token})
}

// GoogleLogin accepts the access token from a federated Cognito
// session (Google hosted-UI sign-in) and ensures the profile document
// exists. The client keeps the token it already holds.
func (a *AuthController) GoogleLogin(ctx *gin.Context) {
	var request structs.GoogleLoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	userID, email, err := utils.ValidateAccessToken(ctx, a.cfg.Cognito.Region, request.AccessToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid federated session", "message": err.Error()})
		return
	}

	a.upsertProfile(ctx, userID, email)
	ctx.JSON(http.StatusOK, gin.H{"message": "Sign-in successful", "accessToken": request.AccessToken})
}

func (a *AuthController) ForgotPassword(ctx *gin.Context) {
	var request structs.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "Check email format"})
		return
	}

	if err := a.initiateForgotPassword(ctx, request.Email); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initiate password reset", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password reset initiated. Check your email for further instructions."})
}

func (a *AuthController) VerifyForgotPassword(ctx *gin.Context) {
	var request structs.VerifyForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	if err := a.confirmForgotPassword(ctx, request.Email, request.Code, request.NewPassword); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm password reset", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password successfully changed"})
}

// ChangePassword requires the current credential alongside the new
// one; Cognito reauthenticates with the access token.
func (a *AuthController) ChangePassword(ctx *gin.Context) {
	var request structs.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	accessToken := bearerToken(ctx)
	if accessToken == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	client, err := utils.NewCognitoClient(ctx, a.cfg.Cognito.Region)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	_, err = client.ChangePassword(ctx, &cognitoidentityprovider.ChangePasswordInput{
		AccessToken:      aws.String(accessToken),
		PreviousPassword: aws.String(request.CurrentPassword),
		ProposedPassword: aws.String(request.NewPassword),
	})
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to change password", "message": "Current password did not match"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// DeleteAccount reauthenticates with the supplied password, deletes
// the Cognito user and cascades over the profile and every mission
// document the user owns.
func (a *AuthController) DeleteAccount(ctx *gin.Context) {
	var request structs.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	userID := ctx.GetString("userID")
	email := ctx.GetString("userEmail")
	if userID == "" || email == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Recent reauthentication is required before a destructive delete
	if _, err := a.loginWithCognito(ctx, email, request.Password); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Reauthentication failed", "message": "Invalid password"})
		return
	}

	accessToken := bearerToken(ctx)
	client, err := utils.NewCognitoClient(ctx, a.cfg.Cognito.Region)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if _, err := client.DeleteUser(ctx, &cognitoidentityprovider.DeleteUserInput{
		AccessToken: aws.String(accessToken),
	}); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.DeleteUserData(dbCtx, userID); err != nil {
		// The Cognito user is gone; log and report so the orphaned
		// documents can be cleaned up manually.
		log.Printf("Cascade delete failed for %s: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Account deleted but data cleanup failed"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

func (a *AuthController) VerifyToken(ctx *gin.Context) {
	token := bearerToken(ctx)
	if token == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	if _, _, err := utils.ValidateAccessToken(ctx, a.cfg.Cognito.Region, token); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Token is valid"})
}

func bearerToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(authHeader) <= len(prefix) || authHeader[:len(prefix)] != prefix {
		return ""
	}
	return authHeader[len(prefix):]
}

// ensureProfileAndCountLogin creates the profile document on first
// sign-in and bumps the login counter used by the admin dashboard.
func (a *AuthController) ensureProfileAndCountLogin(ctx *gin.Context, accessToken string) {
	userID, email, err := utils.ValidateAccessToken(ctx, a.cfg.Cognito.Region, accessToken)
	if err != nil {
		log.Printf("Could not resolve user after login: %v", err)
		return
	}
	a.upsertProfile(ctx, userID, email)

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = db.MongoDatabase.Collection("users").UpdateOne(
		dbCtx,
		bson.M{"_id": userID},
		bson.M{"$inc": bson.M{"loginCount": 1}, "$set": bson.M{"lastLoginAt": time.Now()}},
	)
	if err != nil {
		log.Printf("Failed to record login for %s: %v", userID, err)
	}
}

func (a *AuthController) upsertProfile(ctx context.Context, userID, email string) {
	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := db.UpsertUser(dbCtx, userID, bson.M{
		"email": email,
		"name":  utils.ExtractNameFromEmail(email),
	})
	if err != nil {
		log.Printf("Failed to upsert profile for %s: %v", userID, err)
	}
}

func (a *AuthController) cognitoClient(ctx context.Context) (*cognitoidentityprovider.Client, error) {
	return utils.NewCognitoClient(ctx, a.cfg.Cognito.Region)
}

func (a *AuthController) signUpWithCognito(ctx context.Context, email, password, name string) error {
	client, err := a.cognitoClient(ctx)
	if err != nil {
		return err
	}

	if name == "" {
		name = utils.ExtractNameFromEmail(email)
	}
	secretHash := utils.GenerateSecretHash(email, a.cfg.Cognito.AppClientId, a.cfg.Cognito.AppClientSecret)

	input := cognitoidentityprovider.SignUpInput{
		ClientId:   aws.String(a.cfg.Cognito.AppClientId),
		Password:   aws.String(password),
		SecretHash: aws.String(secretHash),
		Username:   aws.String(email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("nickname"), Value: aws.String(name)},
		},
	}

	if _, err := client.SignUp(ctx, &input); err != nil {
		log.Println("Error during sign-up:", err)
		return fmt.Errorf("sign-up failed: %v", err)
	}
	return nil
}

func (a *AuthController) verifyEmailWithCognito(ctx context.Context, email, confirmationCode string) error {
	client, err := a.cognitoClient(ctx)
	if err != nil {
		return err
	}

	secretHash := utils.GenerateSecretHash(email, a.cfg.Cognito.AppClientId, a.cfg.Cognito.AppClientSecret)

	input := cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(a.cfg.Cognito.AppClientId),
		ConfirmationCode: aws.String(confirmationCode),
		Username:         aws.String(email),
		SecretHash:       aws.String(secretHash),
	}

	if _, err := client.ConfirmSignUp(ctx, &input); err != nil {
		log.Println("Error during email verification:", err)
		return fmt.Errorf("email verification failed: %v", err)
	}
	return nil
}

func (a *AuthController) loginWithCognito(ctx context.Context, email, password string) (string, error) {
	client, err := a.cognitoClient(ctx)
	if err != nil {
		return "", err
	}

	secretHash := utils.GenerateSecretHash(email, a.cfg.Cognito.AppClientId, a.cfg.Cognito.AppClientSecret)

	input := cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(a.cfg.Cognito.AppClientId),
		AuthParameters: map[string]string{
			"USERNAME":    email,
			"PASSWORD":    password,
			"SECRET_HASH": secretHash,
		},
	}

	out, err := client.InitiateAuth(ctx, &input)
	if err != nil {
		return "", fmt.Errorf("authentication failed")
	}
	return accessTokenFromAuthOutput(out)
}

// accessTokenFromAuthOutput extracts the access token from an
// InitiateAuth response. A pending challenge (e.g.
// NEW_PASSWORD_REQUIRED) leaves the result nil without an error.
func accessTokenFromAuthOutput(out *cognitoidentityprovider.InitiateAuthOutput) (string, error) {
	if out == nil || out.AuthenticationResult == nil || out.AuthenticationResult.AccessToken == nil {
		return "", fmt.Errorf("authentication failed")
	}
	return *out.AuthenticationResult.AccessToken, nil
}

func (a *AuthController) initiateForgotPassword(ctx context.Context, email string) error {
	client, err := a.cognitoClient(ctx)
	if err != nil {
		return err
	}

	secretHash := utils.GenerateSecretHash(email, a.cfg.Cognito.AppClientId, a.cfg.Cognito.AppClientSecret)

	input := cognitoidentityprovider.ForgotPasswordInput{
		ClientId:   aws.String(a.cfg.Cognito.AppClientId),
		Username:   aws.String(email),
		SecretHash: aws.String(secretHash),
	}

	if _, err := client.ForgotPassword(ctx, &input); err != nil {
		return fmt.Errorf("error initiating forgot password: %v", err)
	}
	return nil
}

func (a *AuthController) confirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	client, err := a.cognitoClient(ctx)
	if err != nil {
		return err
	}

	secretHash := utils.GenerateSecretHash(email, a.cfg.Cognito.AppClientId, a.cfg.Cognito.AppClientSecret)

	input := cognitoidentityprovider.ConfirmForgotPasswordInput{
		ClientId:         aws.String(a.cfg.Cognito.AppClientId),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(newPassword),
		SecretHash:       aws.String(secretHash),
	}

	if _, err := client.ConfirmForgotPassword(ctx, &input); err != nil {
		return fmt.Errorf("error confirming forgot password: %v", err)
	}
	return nil
}
