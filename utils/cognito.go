package utils

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

// NewCognitoClient builds a Cognito client for the configured region.
func NewCognitoClient(ctx context.Context, region string) (*cognitoidentityprovider.Client, error) {
	cfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cognitoidentityprovider.NewFromConfig(cfg), nil
}

// ValidateAccessToken asks Cognito for the user behind an access
// token. Returns the user id (Cognito sub/username) and email; an
// invalid or expired token surfaces as an error.
func ValidateAccessToken(ctx context.Context, region, accessToken string) (string, string, error) {
	client, err := NewCognitoClient(ctx, region)
	if err != nil {
		return "", "", err
	}

	out, err := client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return "", "", fmt.Errorf("token validation failed: %w", err)
	}

	userID := aws.ToString(out.Username)
	email := ""
	for _, attr := range out.UserAttributes {
		if aws.ToString(attr.Name) == "email" {
			email = aws.ToString(attr.Value)
		}
	}
	return userID, email, nil
}
