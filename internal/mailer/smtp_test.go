package mailer

import (
	"context"
	"encoding/base64"
	"io"
	"net"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSMTP accepts one session on 127.0.0.1 without STARTTLS and records it.
type fakeSMTP struct {
	host string
	port int

	authReply string
	commands  []string
	data      string
	done      chan struct{}
}

func startFakeSMTP(t *testing.T, authReply string) *fakeSMTP {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := ln.Addr().(*net.TCPAddr)
	f := &fakeSMTP{
		host:      "127.0.0.1",
		port:      addr.Port,
		authReply: authReply,
		done:      make(chan struct{}),
	}

	go f.serve(ln)
	t.Cleanup(func() {
		ln.Close()
		<-f.done
	})
	return f
}

func (f *fakeSMTP) serve(ln net.Listener) {
	defer close(f.done)

	conn, err := ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 localhost ESMTP ready")

	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		f.commands = append(f.commands, line)

		switch verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0]); verb {
		case "EHLO":
			_ = tp.PrintfLine("250-localhost")
			_ = tp.PrintfLine("250 AUTH PLAIN")
		case "AUTH":
			_ = tp.PrintfLine("%s", f.authReply)
		case "MAIL", "RCPT":
			_ = tp.PrintfLine("250 OK")
		case "DATA":
			_ = tp.PrintfLine("354 go ahead")
			b, err := io.ReadAll(tp.DotReader())
			if err != nil {
				return
			}
			f.data = string(b)
			_ = tp.PrintfLine("250 queued")
		case "QUIT":
			_ = tp.PrintfLine("221 bye")
			return
		default:
			_ = tp.PrintfLine("502 not implemented")
		}
	}
}

func (f *fakeSMTP) transport() *SMTPTransport {
	return NewSMTPTransport(SMTPConfig{
		Host:     f.host,
		Port:     f.port,
		Username: "web@j2systems.ec",
		Password: "app-password",
		Timeout:  5 * time.Second,
	})
}

func TestSMTPTransport_Session(t *testing.T) {
	srv := startFakeSMTP(t, "235 2.7.0 accepted")

	msg := testMessage()
	msg.Subject = "New contact: Eve\r\nBcc: victim@example.com"

	require.NoError(t, srv.transport().Send(context.Background(), msg))
	<-srv.done

	require.NotEmpty(t, srv.commands)
	assert.Equal(t, "EHLO localhost", srv.commands[0])
	for _, cmd := range srv.commands {
		assert.NotEqual(t, "STARTTLS", cmd, "not offered by the server")
	}

	var auth string
	for _, cmd := range srv.commands {
		if strings.HasPrefix(cmd, "AUTH PLAIN ") {
			auth = strings.TrimPrefix(cmd, "AUTH PLAIN ")
		}
	}
	creds, err := base64.StdEncoding.DecodeString(auth)
	require.NoError(t, err)
	assert.Equal(t, "\x00web@j2systems.ec\x00app-password", string(creds))

	assert.Contains(t, srv.commands, "MAIL FROM:<web@j2systems.ec>")
	assert.Contains(t, srv.commands, "RCPT TO:<ops@j2systems.ec>")
	assert.Contains(t, srv.commands, "DATA")
	assert.Equal(t, "QUIT", srv.commands[len(srv.commands)-1])

	assert.Contains(t, srv.data, "Subject: New contact: Eve Bcc: victim@example.com\n")
	assert.NotContains(t, srv.data, "\nBcc:")
	assert.Contains(t, srv.data, "<p>Hola</p>")
}

func TestSMTPTransport_AuthRejected(t *testing.T) {
	srv := startFakeSMTP(t, "535 5.7.8 bad credentials")

	err := srv.transport().Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp auth")
	assert.Contains(t, err.Error(), "535")
}

func TestLogTransport_NilLogger(t *testing.T) {
	tr := NewLogTransport(nil)
	assert.NotPanics(t, func() {
		assert.NoError(t, tr.Send(context.Background(), testMessage()))
	})
}
