// Command cherrystun is the project's front door: binding requests, NAT
// mapping-behavior discovery, and the signaling broker all live behind
// one binary's subcommands, in the manner of pion/stun's cmd/ tree
// wired up with cobra the way bamgate's CLI is.
package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/pion/logging"
	"github.com/spf13/cobra"

	stun "github.com/navinshrinivas/cherrystun"
	"github.com/navinshrinivas/cherrystun/internal/signaling"
)

var log logging.LeveledLogger //nolint:gochecknoglobals

func main() {
	log = logging.NewDefaultLeveledLoggerForScope("cherrystun", logging.LogLevelInfo, os.Stdout)

	root := &cobra.Command{
		Use:   "cherrystun",
		Short: "STUN client and signaling broker",
	}

	root.AddCommand(bindCmd(), natBehaviourCmd(), brokerCmd())

	if err := root.Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func bindCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "bind <server>",
		Short: "Send a single binding request and print the reflexive address",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			conn, addr, err := dial(args[0])
			if err != nil {
				return err
			}
			defer conn.Close() //nolint:errcheck

			client := stun.NewClient()
			client.Timeout = timeout

			msg, err := stun.NewMessage(stun.ClassRequest, stun.MethodBinding, nil)
			if err != nil {
				return err
			}

			resp, err := client.SendRequest(conn, addr, msg)
			if err != nil {
				return err
			}

			var xored stun.XORMappedAddress
			if err := xored.GetFrom(resp); err != nil {
				return err
			}

			log.Infof("reflexive address: %s:%d", xored.IP, xored.Port)
			fmt.Printf("%s:%d\n", xored.IP, xored.Port)

			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "overall exchange timeout")

	return cmd
}

func natBehaviourCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nat-behaviour <server>",
		Short: "Run RFC 5780 mapping-behavior discovery against a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			conn, addr, err := dial(args[0])
			if err != nil {
				return err
			}
			defer conn.Close() //nolint:errcheck

			client := stun.NewClient()

			behavior, err := client.DiscoverMapping(conn, addr)
			if err != nil {
				return err
			}

			log.Infof("NAT mapping behavior: %s", behavior)
			fmt.Println(behavior)

			return nil
		},
	}

	return cmd
}

func brokerCmd() *cobra.Command {
	var addr, redisAddr string

	cmd := &cobra.Command{
		Use:   "broker",
		Short: "Run the WebRTC signaling broker",
		RunE: func(_ *cobra.Command, _ []string) error {
			store := signaling.NewRedisRoomStore(redisAddr)
			server := signaling.NewServer(store, log)

			log.Infof("signaling broker listening on %s", addr)

			return server.ListenAndServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "listen", ":8080", "HTTP/WebSocket listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "localhost:6379", "Redis address backing the room registry")

	return cmd
}

func dial(server string) (*net.UDPConn, *net.UDPAddr, error) {
	addr, err := net.ResolveUDPAddr("udp4", server)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving %s: %w", server, err)
	}

	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return nil, nil, fmt.Errorf("opening UDP socket: %w", err)
	}

	return conn, addr, nil
}
