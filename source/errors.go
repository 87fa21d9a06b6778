package source

import "github.com/pkg/errors"

func readError(e error, pos int) error {
	return errors.Wrapf(e, "cannot read token #%d", pos)
}
