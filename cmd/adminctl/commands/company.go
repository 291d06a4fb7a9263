package commands

import (
	"github.com/spf13/cobra"

	"github.com/labsite/go-admin-client/core"
	"github.com/labsite/go-admin-client/resources/typed"
)

func newCompanyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Show or update the company profile",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the company profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			profile, err := a.rest.Company.GetWithContext(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Print(profile)
		},
	}

	var (
		body   typed.CompanyRequestBody
		qrPath string
	)
	update := &cobra.Command{
		Use:   "update",
		Short: "Update contact details and the WeChat QR code",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if qrPath != "" {
				name, content, err := readFile(qrPath)
				if err != nil {
					return err
				}
				body.WechatQrCode = &core.FileData{Filename: name, Content: content}
			}
			response, err := a.rest.Company.UpdateWithContext(cmd.Context(), &body)
			if err != nil {
				return err
			}
			a.printer.Success("company profile updated")
			return a.printer.Print(response.Data)
		},
	}
	update.Flags().StringVar(&body.Address, "address", "", "postal address")
	update.Flags().StringVar(&body.Phone, "phone", "", "phone number")
	update.Flags().StringVar(&body.Email, "email", "", "contact email")
	update.Flags().StringVar(&qrPath, "wechat-qr", "", "QR code image to upload")

	cmd.AddCommand(get, update)
	return cmd
}
