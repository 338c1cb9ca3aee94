// Package admincli provisions admin accounts from an interactive terminal.
// Public signup only creates customers and merchants.
package admincli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/storehub/internal/common"
	"github.com/dmitrijs2005/storehub/internal/server/models"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// AdminCreator is the part of the session service the tool needs.
type AdminCreator interface {
	CreateAdmin(ctx context.Context, userName, password string) (*models.User, error)
}

// Run asks for a user name and a password (typed twice) and creates the
// admin account.
func Run(ctx context.Context, creator AdminCreator, in io.Reader, out io.Writer) (*models.User, error) {
	reader := bufio.NewReader(in)

	name, err := GetSimpleText(reader, "Admin user name", out)
	if err != nil {
		return nil, err
	}

	pw, err := GetPassword("Enter password", out)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(pw)

	again, err := GetPassword("Repeat password", out)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(again)

	if string(pw) != string(again) {
		return nil, ErrPasswordMismatch
	}

	u, err := creator.CreateAdmin(ctx, name, string(pw))
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Admin %s created (id %s)\n", u.UserName, u.ID)
	return u, nil
}
