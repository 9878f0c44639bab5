package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joshp123/gohome-robovac/internal/core"
	"github.com/joshp123/gohome-robovac/plugins/robovac"
)

var simpleCommands = map[string]string{
	"start":  "start",
	"pause":  "pause",
	"stop":   "stop",
	"dock":   "return_to_base",
	"spot":   "clean_spot",
	"locate": "locate",
}

func vacuumsCmd(ctx context.Context, client *apiClient, args []string, jsonOutput bool) {
	out := outputMode{json: jsonOutput}
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var vacuums []robovac.EntityView
	if err := client.get(ctx, "/vacuums", &vacuums); err != nil {
		fatal("list vacuums", err)
	}
	if args[0] == "list" {
		if out.json {
			out.printJSON(vacuums)
			return
		}
		rows := [][]string{{"ID", "NAME", "MODEL", "ACTIVITY", "BATTERY", "AVAILABLE"}}
		for _, v := range vacuums {
			rows = append(rows, []string{
				v.ID, v.Name, v.Model, activityText(v), strconv.Itoa(v.State.Battery) + "%", strconv.FormatBool(v.Available),
			})
		}
		out.table(rows)
		return
	}

	if len(args) < 2 {
		fatal("vacuums "+args[0], fmt.Errorf("missing vacuum"))
	}
	id, err := resolveVacuum(args[1], vacuums)
	if err != nil {
		fatal("vacuums "+args[0], err)
	}
	path := "/vacuums/" + url.PathEscape(id)

	var view robovac.EntityView
	switch args[0] {
	case "status":
		err = client.get(ctx, path, &view)
	case "refresh":
		err = client.post(ctx, path+"/refresh", nil, &view)
	case "fan":
		if len(args) < 3 {
			fatal("vacuums fan", fmt.Errorf("missing fan speed"))
		}
		err = client.post(ctx, path+"/commands", robovac.CommandRequest{Command: "set_fan_speed", FanSpeed: strings.Join(args[2:], " ")}, &view)
	case "send":
		req, parseErr := sendRequest(args[2:])
		if parseErr != nil {
			fatal("vacuums send", parseErr)
		}
		err = client.post(ctx, path+"/commands", req, &view)
	default:
		command, ok := simpleCommands[args[0]]
		if !ok {
			usage()
			os.Exit(2)
		}
		err = client.post(ctx, path+"/commands", robovac.CommandRequest{Command: command}, &view)
	}
	if err != nil {
		fatal("vacuums "+args[0], err)
	}
	printVacuum(out, view)
}

func sendRequest(args []string) (robovac.CommandRequest, error) {
	if len(args) < 1 {
		return robovac.CommandRequest{}, fmt.Errorf("missing command (one of %s)", strings.Join(robovac.SendCommandNames, ", "))
	}
	flags := flag.NewFlagSet("vacuums send", flag.ExitOnError)
	rooms := flags.String("rooms", "", "Comma separated room ids (roomClean)")
	count := flags.Int("count", 0, "Clean count (roomClean)")
	_ = flags.Parse(args[1:])

	req := robovac.CommandRequest{Command: "send_command", Name: args[0]}
	if *rooms == "" && *count == 0 {
		return req, nil
	}
	req.Params = map[string]any{}
	if *rooms != "" {
		var ids []int
		for _, part := range strings.Split(*rooms, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return robovac.CommandRequest{}, fmt.Errorf("invalid room id %q", part)
			}
			ids = append(ids, id)
		}
		req.Params["roomIds"] = ids
	}
	if *count != 0 {
		req.Params["count"] = *count
	}
	return req, nil
}

func activityText(v robovac.EntityView) string {
	if v.State.Activity == "" {
		return "-"
	}
	return string(v.State.Activity)
}

func printVacuum(out outputMode, v robovac.EntityView) {
	if out.json {
		out.printJSON(v)
		return
	}
	fmt.Printf("NAME:      %s (%s)\n", v.Name, v.ID)
	fmt.Printf("MODEL:     %s\n", v.Model)
	fmt.Printf("STATE:     %s\n", activityText(v))
	fmt.Printf("BATTERY:   %d%%\n", v.State.Battery)
	fmt.Printf("AVAILABLE: %t (%s)\n", v.Available, v.Lifecycle)
	if v.State.FanSpeed != "" {
		fmt.Printf("FAN:       %s\n", v.State.FanSpeed)
	}
	if v.ErrorMessage != "" {
		fmt.Printf("ERROR:     %s\n", v.ErrorMessage)
	}
}

func pluginsCmd(ctx context.Context, client *apiClient, args []string, jsonOutput bool) {
	out := outputMode{json: jsonOutput}
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "list":
		var plugins []core.PluginSummary
		if err := client.get(ctx, "/plugins", &plugins); err != nil {
			fatal("list plugins", err)
		}
		if out.json {
			out.printJSON(plugins)
			return
		}
		for _, plugin := range plugins {
			fmt.Printf("%s\t%s\t%s\t%s\n", plugin.PluginID, plugin.DisplayName, plugin.Version, plugin.Status)
		}
	case "describe":
		if len(args) < 2 {
			fatal("describe", fmt.Errorf("missing plugin id"))
		}
		var plugin core.PluginDescriptor
		if err := client.get(ctx, "/plugins/"+url.PathEscape(args[1]), &plugin); err != nil {
			fatal("describe plugin", err)
		}
		if out.json {
			out.printJSON(plugin)
			return
		}
		fmt.Printf("id: %s\n", plugin.PluginID)
		fmt.Printf("name: %s\n", plugin.DisplayName)
		fmt.Printf("version: %s\n", plugin.Version)
		fmt.Printf("status: %s\n", plugin.Status)
		if plugin.HealthMessage != "" {
			fmt.Printf("health: %s\n", plugin.HealthMessage)
		}
		fmt.Println("services:")
		for _, svc := range plugin.Services {
			fmt.Printf("  - %s\n", svc)
		}
		fmt.Println("dashboards:")
		for _, dash := range plugin.Dashboards {
			fmt.Printf("  - %s (%s)\n", dash.Name, dash.Path)
		}
		fmt.Println("agents_md:")
		fmt.Println(plugin.AgentsMD)
	default:
		usage()
		os.Exit(2)
	}
}
