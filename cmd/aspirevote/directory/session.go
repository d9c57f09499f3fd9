package directory

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"

	"aspirevote-backend/cmd/aspirevote/model"

	pkgerrors "github.com/pkg/errors"
)

type userInfo struct {
	Type string `json:"type"`
}

// LoadSession reads the persisted user info and bearer token. Either file may
// be missing: no user info means a participant, no token means logged out.
func LoadSession(userInfoPath, tokenPath string) (model.Session, error) {
	var session model.Session

	if userInfoPath != "" {
		data, err := os.ReadFile(userInfoPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return model.Session{}, pkgerrors.Wrap(err, "read user info")
		default:
			var info userInfo
			if err := json.Unmarshal(data, &info); err != nil {
				return model.Session{}, pkgerrors.Wrap(err, "parse user info")
			}
			session.Role = model.Role(info.Type)
		}
	}

	if tokenPath != "" {
		data, err := os.ReadFile(tokenPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return model.Session{}, pkgerrors.Wrap(err, "read token")
		default:
			session.Token = strings.TrimSpace(string(data))
		}
	}

	return session, nil
}
