package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/whatis/infra/cloudrun"
	"github.com/GregMSThompson/whatis/infra/docker"
	"github.com/GregMSThompson/whatis/infra/provider"
	"github.com/GregMSThompson/whatis/infra/vertex"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		deps := []pulumi.Resource{repo}

		// the vertex backend needs the aiplatform api; ollama runs elsewhere
		llmCfg := config.New(ctx, "llm")
		useVertex := llmCfg.Get("provider") == "vertex"
		if useVertex {
			svc, err := vertex.SetupVertex(ctx, prov)
			if err != nil {
				return err
			}
			deps = append(deps, svc)
		}

		sa, err := cloudrun.SetupCloudRun(ctx, prov, deps...)
		if err != nil {
			return err
		}

		if useVertex {
			if err := vertex.GrantVertexUser(ctx, prov, sa); err != nil {
				return err
			}
		}

		return nil
	})
}
