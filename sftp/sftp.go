package sftp

import (
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

type Config struct {
	Username   string
	Password   string // required only if password authentication is to be used
	PrivateKey string // required only if private key authentication is to be used
	Server     string // host:port
	Timeout    time.Duration
}

type Client struct {
	sshClient  *ssh.Client
	sftpClient *sftp.Client
}

func New(config Config) (*Client, error) {
	var auth []ssh.AuthMethod

	if config.PrivateKey != "" {
		signer, err := ssh.ParsePrivateKey([]byte(config.PrivateKey))
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}

	if config.Password != "" {
		auth = append(auth, ssh.Password(config.Password))
	}

	if len(auth) == 0 {
		return nil, fmt.Errorf("no authentication method configured")
	}

	sshConfig := &ssh.ClientConfig{
		User:            config.Username,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         config.Timeout,
	}

	conn, err := net.DialTimeout("tcp", config.Server, config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", config.Server, err)
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, config.Server, sshConfig)
	if err != nil {
		return nil, fmt.Errorf("ssh handshake with %s failed: %w", config.Server, err)
	}

	sshClient := ssh.NewClient(c, chans, reqs)

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, fmt.Errorf("failed to open sftp session: %w", err)
	}

	return &Client{sshClient: sshClient, sftpClient: sftpClient}, nil
}

// Upload copies a local file to remotePath, creating parent directories as
// needed.
func (c *Client) Upload(localPath string, remotePath string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer src.Close()

	if dir := path.Dir(remotePath); dir != "." && dir != "/" {
		if err = c.sftpClient.MkdirAll(dir); err != nil {
			return fmt.Errorf("failed to create remote dir %s: %w", dir, err)
		}
	}

	dst, err := c.sftpClient.Create(remotePath)
	if err != nil {
		return fmt.Errorf("failed to create remote file %s: %w", remotePath, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to write %s: %w", remotePath, err)
	}

	return nil
}

func (c *Client) Close() error {
	if err := c.sftpClient.Close(); err != nil {
		c.sshClient.Close()
		return err
	}

	return c.sshClient.Close()
}
