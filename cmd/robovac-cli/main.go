package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fullstorydev/grpcurl"
	"github.com/jhump/protoreflect/grpcreflect"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/joshp123/gohome-robovac/internal/config"
)

func main() {
	jsonOutput := false
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--json" {
		jsonOutput = true
		args = args[1:]
	}
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "vacuums":
		vacuumsCmd(ctx, newAPIClient(resolveHTTPAddr()), args[1:], jsonOutput)
		return
	case "plugins":
		pluginsCmd(ctx, newAPIClient(resolveHTTPAddr()), args[1:], jsonOutput)
		return
	}

	conn, err := grpcurl.BlockingDial(ctx, "tcp", resolveGRPCAddr(), insecure.NewCredentials())
	if err != nil {
		fatal("dial", err)
	}
	defer conn.Close()

	switch args[0] {
	case "health":
		healthCmd(ctx, conn, args[1:], jsonOutput)
	case "services":
		servicesCmd(ctx, conn)
	case "methods":
		methodsCmd(ctx, conn, args[1:])
	case "call":
		callCmd(ctx, conn, args[1:])
	default:
		usage()
		os.Exit(2)
	}
}

func healthCmd(ctx context.Context, conn *grpc.ClientConn, args []string, jsonOutput bool) {
	service := ""
	if len(args) > 0 {
		service = args[0]
		if !strings.Contains(service, ".") {
			service = "robovac." + service
		}
	}
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		if st, ok := status.FromError(err); ok && st.Code() == codes.NotFound {
			fatal("health", fmt.Errorf("unknown service %q", service))
		}
		fatal("health", err)
	}
	if jsonOutput {
		data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
		if err != nil {
			fatal("format json", err)
		}
		fmt.Println(string(data))
		return
	}
	fmt.Println(resp.GetStatus().String())
}

func servicesCmd(ctx context.Context, conn *grpc.ClientConn) {
	descSource := reflectionSource(ctx, conn)
	services, err := grpcurl.ListServices(descSource)
	if err != nil {
		fatal("list services", err)
	}

	for _, service := range services {
		fmt.Println(service)
	}
}

func methodsCmd(ctx context.Context, conn *grpc.ClientConn, args []string) {
	if len(args) < 1 {
		fatal("methods", fmt.Errorf("missing service name"))
	}

	descSource := reflectionSource(ctx, conn)
	methods, err := grpcurl.ListMethods(descSource, args[0])
	if err != nil {
		fatal("list methods", err)
	}

	for _, method := range methods {
		fmt.Println(method)
	}
}

func callCmd(ctx context.Context, conn *grpc.ClientConn, args []string) {
	flags := flag.NewFlagSet("call", flag.ExitOnError)
	data := flags.String("data", "", "JSON request body")
	_ = flags.Parse(args)
	remaining := flags.Args()
	if len(remaining) < 1 {
		fatal("call", fmt.Errorf("missing method (service/method)"))
	}

	method := remaining[0]
	descSource := reflectionSource(ctx, conn)

	var reader io.Reader
	if *data != "" {
		reader = strings.NewReader(*data)
	} else if isStdinTerminal() {
		reader = strings.NewReader("{}")
	} else {
		reader = os.Stdin
	}

	parser, formatter, err := grpcurl.RequestParserAndFormatter(grpcurl.FormatJSON, descSource, reader, grpcurl.FormatOptions{})
	if err != nil {
		fatal("parse request", err)
	}

	handler := grpcurl.NewDefaultEventHandler(os.Stdout, descSource, formatter, false)
	if err := grpcurl.InvokeRPC(ctx, descSource, conn, method, nil, handler, parser.Next); err != nil {
		fatal("invoke", err)
	}
	if handler.Status != nil && handler.Status.Code() != codes.OK {
		fatal("invoke", handler.Status.Err())
	}
}

func reflectionSource(ctx context.Context, conn *grpc.ClientConn) grpcurl.DescriptorSource {
	client := grpcreflect.NewClientAuto(ctx, conn)
	return grpcurl.DescriptorSourceFromServer(ctx, client)
}

func isStdinTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return true
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func resolveGRPCAddr() string {
	if value := os.Getenv("ROBOVAC_GRPC_ADDR"); value != "" {
		return value
	}
	if cfg := loadConfig(); cfg != nil {
		return dialAddr(cfg.Core.GRPCAddr)
	}
	return "127.0.0.1:9000"
}

func resolveHTTPAddr() string {
	if value := os.Getenv("ROBOVAC_HTTP_ADDR"); value != "" {
		return value
	}
	if cfg := loadConfig(); cfg != nil {
		return dialAddr(cfg.Core.HTTPAddr)
	}
	return "127.0.0.1:8080"
}

// dialAddr turns a wildcard listen address into a loopback one.
func dialAddr(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return listen
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port)
}

func configSearchPaths() []string {
	paths := []string{}
	if value := os.Getenv("ROBOVAC_CONFIG"); value != "" {
		paths = append(paths, value)
	}
	paths = append(paths, config.DefaultPath)
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "gohome-robovac", "config.yaml"))
	}
	return paths
}

func loadConfig() *config.Config {
	for _, path := range configSearchPaths() {
		if cfg, err := config.Load(path); err == nil {
			return cfg
		}
	}
	return nil
}

func usage() {
	fmt.Println("robovac-cli [--json] <command> [args]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  vacuums list")
	fmt.Println("  vacuums status <vacuum>")
	fmt.Println("  vacuums refresh <vacuum>")
	fmt.Println("  vacuums <start|pause|stop|dock|spot|locate> <vacuum>")
	fmt.Println("  vacuums fan <vacuum> <speed>")
	fmt.Println("  vacuums send <vacuum> <command> [--rooms 1,2] [--count 1]")
	fmt.Println("  plugins list")
	fmt.Println("  plugins describe <plugin_id>")
	fmt.Println("  health [vacuum]")
	fmt.Println("  services")
	fmt.Println("  methods <service>")
	fmt.Println("  call <service/method> --data '{}' (or pipe JSON via stdin)")
}

func fatal(action string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", action, err)
	os.Exit(1)
}
