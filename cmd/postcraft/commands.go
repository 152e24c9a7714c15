package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"postcraft/pkg/domain"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect or create the business profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current profile and onboarding state",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.onboard.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(snap)
		},
	}

	var input domain.BusinessProfileInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create the business profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.profiles.Create(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(profile)
		},
	}
	create.Flags().StringVar(&input.BusinessName, "name", "", "business name")
	create.Flags().StringVar(&input.Category, "category", "", "business category")
	create.Flags().StringVar(&input.Description, "description", "", "short description")
	create.Flags().StringVar(&input.TargetAudience, "audience", "", "target audience")
	create.Flags().StringVar(&input.WebsiteURL, "website", "", "website URL")
	create.Flags().StringVar(&input.Logo, "logo", "", "logo URL")
	create.Flags().StringVar(&input.PrimaryColor, "primary-color", "", "primary brand color")
	create.Flags().StringVar(&input.SecondaryColor, "secondary-color", "", "secondary brand color")
	create.Flags().StringVar(&input.AccentColor, "accent-color", "", "accent brand color")
	_ = create.MarkFlagRequired("name")

	cmd.AddCommand(show, create)
	return cmd
}

func newIdeasCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "Generate, list and edit post ideas",
	}

	var ideaType string
	var count float64
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate fresh ideas (not saved until you save them)",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.profiles.Data(cmd.Context())
			if err != nil {
				return err
			}
			if data.Profile == nil {
				return errors.New("no business profile yet; run \"postcraft profile create\" first")
			}
			p := data.Profile
			input := domain.BusinessProfileInput{
				BusinessName:   p.BusinessName,
				Category:       p.Category,
				Description:    p.Description,
				TargetAudience: p.TargetAudience,
				WebsiteURL:     p.WebsiteURL,
				Logo:           p.Logo,
				PrimaryColor:   p.PrimaryColor,
				SecondaryColor: p.SecondaryColor,
				AccentColor:    p.AccentColor,
			}
			var countArg *float64
			if cmd.Flags().Changed("count") {
				countArg = &count
			}
			ideas, err := a.ideas.Generate(cmd.Context(), input, domain.IdeaType(ideaType), countArg)
			if err != nil {
				return err
			}
			return printJSON(ideas)
		},
	}
	generate.Flags().StringVar(&ideaType, "type", string(domain.IdeaPromotional), "idea type (PROMOTIONAL or EDUCATIONAL)")
	generate.Flags().Float64Var(&count, "count", 0, "how many ideas (1-5)")

	var listType string
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved ideas of one type",
		RunE: func(cmd *cobra.Command, args []string) error {
			ideas, err := a.ideas.Saved(cmd.Context(), domain.IdeaType(listType))
			if err != nil {
				return err
			}
			return printJSON(ideas)
		},
	}
	list.Flags().StringVar(&listType, "type", string(domain.IdeaPromotional), "idea type (PROMOTIONAL or EDUCATIONAL)")

	var saveReq domain.SavePostIdeaRequest
	var saveType string
	save := &cobra.Command{
		Use:   "save",
		Short: "Save a generated idea",
		RunE: func(cmd *cobra.Command, args []string) error {
			profileID, err := a.requireProfileID(cmd)
			if err != nil {
				return err
			}
			saveReq.BusinessProfileID = profileID
			saveReq.IdeaType = domain.IdeaType(saveType)
			idea, err := a.ideas.Save(cmd.Context(), saveReq)
			if err != nil {
				return err
			}
			return printJSON(idea)
		},
	}
	save.Flags().StringVar(&saveReq.Title, "title", "", "idea title")
	save.Flags().StringVar(&saveReq.Content, "content", "", "idea content")
	save.Flags().StringVar(&saveType, "type", string(domain.IdeaPromotional), "idea type (PROMOTIONAL or EDUCATIONAL)")
	_ = save.MarkFlagRequired("title")
	_ = save.MarkFlagRequired("content")

	var updateID, updateType, newTitle, newContent string
	update := &cobra.Command{
		Use:   "update",
		Short: "Edit a saved idea",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.UpdatePostIdeaRequest{}
			if cmd.Flags().Changed("title") {
				req.Title = &newTitle
			}
			if cmd.Flags().Changed("content") {
				req.Content = &newContent
			}
			if req.Title == nil && req.Content == nil {
				return errors.New("nothing to update; pass --title or --content")
			}
			idea, err := a.ideas.Update(cmd.Context(), domain.IdeaType(updateType), updateID, req)
			if err != nil {
				return err
			}
			return printJSON(idea)
		},
	}
	update.Flags().StringVar(&updateID, "id", "", "saved idea id")
	update.Flags().StringVar(&updateType, "type", string(domain.IdeaPromotional), "idea type (PROMOTIONAL or EDUCATIONAL)")
	update.Flags().StringVar(&newTitle, "title", "", "new title")
	update.Flags().StringVar(&newContent, "content", "", "new content")
	_ = update.MarkFlagRequired("id")

	cmd.AddCommand(generate, list, save, update)
	return cmd
}

func newPostsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Generate and browse rendered posts",
	}

	var ideaID string
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Render a post image for a saved idea",
		RunE: func(cmd *cobra.Command, args []string) error {
			profileID, err := a.requireProfileID(cmd)
			if err != nil {
				return err
			}
			post, err := a.posts.Generate(cmd.Context(), ideaID, profileID)
			if err != nil {
				return err
			}
			return printJSON(post)
		},
	}
	generate.Flags().StringVar(&ideaID, "idea-id", "", "saved idea id")
	_ = generate.MarkFlagRequired("idea-id")

	list := &cobra.Command{
		Use:   "list",
		Short: "List generated posts for the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			profileID, err := a.requireProfileID(cmd)
			if err != nil {
				return err
			}
			posts, err := a.posts.ByBusinessProfile(cmd.Context(), profileID)
			if err != nil {
				return err
			}
			return printJSON(posts)
		},
	}

	var imageID string
	get := &cobra.Command{
		Use:   "get",
		Short: "Show one generated post",
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := a.posts.Detail(cmd.Context(), imageID)
			if err != nil {
				return err
			}
			return printJSON(post)
		},
	}
	get.Flags().StringVar(&imageID, "image-id", "", "generated post image id")
	_ = get.MarkFlagRequired("image-id")

	cmd.AddCommand(generate, list, get)
	return cmd
}

func newSocialCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "social",
		Short: "Inspect and connect social accounts",
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show per-platform connection status",
		RunE: func(cmd *cobra.Command, args []string) error {
			statusMap, err := a.social.AccountsStatus(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(statusMap)
		},
	}

	var platform string
	connect := &cobra.Command{
		Use:   "connect",
		Short: "Start the OAuth flow for a platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			authURL, err := a.social.Connect(cmd.Context(), domain.SocialPlatform(platform))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Open this URL to authorize:\n%s\n", authURL)
			return nil
		},
	}
	connect.Flags().StringVar(&platform, "platform", "", "facebook, instagram or googlebusiness")
	_ = connect.MarkFlagRequired("platform")

	cmd.AddCommand(status, connect)
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var req domain.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register an account after phone verification",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Auth.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.session.SetTokens(resp.AccessToken, resp.RefreshToken)
			return printJSON(resp.User)
		},
	}
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Email, "email", "", "email (optional)")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}
