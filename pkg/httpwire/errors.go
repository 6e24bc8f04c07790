package httpwire

import "github.com/yourusername/sockguard/internal/xerrors"

func protocolErr(op, msg string) error {
	return xerrors.New(xerrors.ProtocolError, op, msg)
}

func protocolErrf(op, msg string, cause error) error {
	return xerrors.Wrap(xerrors.ProtocolError, op, msg, cause)
}

func ioErr(op, msg string, cause error) error {
	return xerrors.Wrap(xerrors.IoError, op, msg, cause)
}

func unsupportedFramingErr(op, value string) error {
	return xerrors.New(xerrors.UnsupportedFraming, op, "unsupported Transfer-Encoding: "+value)
}
