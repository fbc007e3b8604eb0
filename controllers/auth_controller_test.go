package controllers

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
)

func TestAccessTokenFromAuthOutput(t *testing.T) {
	out := &cognitoidentityprovider.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			AccessToken: aws.String("token-123"),
		},
	}
	token, err := accessTokenFromAuthOutput(out)
	assert.NoError(t, err)
	assert.Equal(t, "token-123", token)
}

func TestAccessTokenFromAuthOutputChallenge(t *testing.T) {
	// A challenge response carries no AuthenticationResult
	out := &cognitoidentityprovider.InitiateAuthOutput{
		ChallengeName: types.ChallengeNameTypeNewPasswordRequired,
	}
	_, err := accessTokenFromAuthOutput(out)
	assert.Error(t, err)

	_, err = accessTokenFromAuthOutput(&cognitoidentityprovider.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{},
	})
	assert.Error(t, err)

	_, err = accessTokenFromAuthOutput(nil)
	assert.Error(t, err)
}
