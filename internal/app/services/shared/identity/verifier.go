package identity

import (
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/utils"
	"net/http"
	"strings"

	"github.com/supertokens/supertokens-golang/recipe/session"
	"github.com/supertokens/supertokens-golang/recipe/session/sessmodels"
)

type jwtVerifier struct {
	secret string
}

// NewJWTVerifier verifies HS256 bearer credentials minted for the local provider.
func NewJWTVerifier(secret string) contracts.SessionVerifier {
	return &jwtVerifier{secret: secret}
}

func (v *jwtVerifier) Verify(w http.ResponseWriter, r *http.Request) (*models.Principal, error) {
	authHeader := r.Header.Get(constvars.HeaderAuthorization)
	if authHeader == "" {
		return nil, nil
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.BearerTokenPrefix))
	return utils.ParseSessionJWT(token, v.secret)
}

type supertokensVerifier struct{}

func NewSupertokensVerifier() contracts.SessionVerifier {
	return &supertokensVerifier{}
}

func (v *supertokensVerifier) Verify(w http.ResponseWriter, r *http.Request) (*models.Principal, error) {
	sessRequired := false
	sess, err := session.GetSession(r, w, &sessmodels.VerifySessionOptions{SessionRequired: &sessRequired})
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	return &models.Principal{
		UserID:        sess.GetUserID(),
		SessionHandle: sess.GetHandle(),
	}, nil
}
