package containers_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"

	v1 "github.com/thegeeklab/scheduler-kubernetes/api/v1"
	containers "github.com/thegeeklab/scheduler-kubernetes/internal/resource/container"
	"github.com/thegeeklab/scheduler-kubernetes/pkg/spi"
)

var _ = Describe("Build", func() {
	var (
		props   v1.SchedulerProperties
		request spi.ScheduleRequest
	)

	BeforeEach(func() {
		props = v1.SchedulerProperties{}
		props.Default()

		request = spi.ScheduleRequest{
			Definition: spi.AppDefinition{
				Name: "timestamp",
				Properties: spi.NewProperties(
					"prop.1.key", "prop.1.value",
					"prop.2.key", "prop.2.value",
				),
			},
			SchedulerProperties: map[string]string{
				spi.CronExpressionKey: "57 13 ? * *",
			},
			CommandLineArguments: []string{"arg1", "arg2"},
			ScheduleName:         "schedulename-1",
			Resource:             "docker:springcloud/spring-cloud-scheduler-spi-test-app:latest",
		}
	})

	It("should set name, image and pull policy", func() {
		container, err := containers.Build(props, request)
		Expect(err).NotTo(HaveOccurred())

		Expect(container.Name).To(Equal("schedulename-1"))
		Expect(container.Image).To(Equal("springcloud/spring-cloud-scheduler-spi-test-app:latest"))
		Expect(container.ImagePullPolicy).To(Equal(corev1.PullIfNotPresent))
	})

	It("should use the request pull policy", func() {
		request.SchedulerProperties[v1.PropertyImagePullPolicy] = "Always"

		container, err := containers.Build(props, request)
		Expect(err).NotTo(HaveOccurred())
		Expect(container.ImagePullPolicy).To(Equal(corev1.PullAlways))
	})

	Context("with exec entry point style", func() {
		It("should pass properties and arguments as arguments", func() {
			props.EntryPointStyle = v1.EntryPointStyle_EXEC

			container, err := containers.Build(props, request)
			Expect(err).NotTo(HaveOccurred())

			Expect(container.Args).To(Equal([]string{
				"--prop.1.key=prop.1.value",
				"--prop.2.key=prop.2.value",
				"arg1",
				"arg2",
			}))
			Expect(container.Env).To(BeEmpty())
		})
	})

	Context("with shell entry point style", func() {
		It("should pass properties as environment variables only", func() {
			props.EntryPointStyle = v1.EntryPointStyle_SHELL

			container, err := containers.Build(props, request)
			Expect(err).NotTo(HaveOccurred())

			Expect(container.Args).To(BeEmpty())
			Expect(container.Env).To(Equal([]corev1.EnvVar{
				{Name: "PROP_1_KEY", Value: "prop.1.value"},
				{Name: "PROP_2_KEY", Value: "prop.2.value"},
			}))
		})
	})

	Context("with boot entry point style", func() {
		It("should pass properties as JSON and arguments unchanged", func() {
			props.EntryPointStyle = v1.EntryPointStyle_BOOT

			container, err := containers.Build(props, request)
			Expect(err).NotTo(HaveOccurred())

			Expect(container.Args).To(Equal([]string{"arg1", "arg2"}))
			Expect(container.Env).To(HaveLen(1))
			Expect(container.Env[0].Name).To(Equal(containers.EnvSpringApplicationJSON))

			values := map[string]string{}
			Expect(json.Unmarshal([]byte(container.Env[0].Value), &values)).To(Succeed())
			Expect(values).To(Equal(map[string]string{
				"prop.1.key": "prop.1.value",
				"prop.2.key": "prop.2.value",
			}))
		})

		It("should be selected by the request property", func() {
			request.SchedulerProperties[v1.PropertyEntryPointStyle] = "boot"

			container, err := containers.Build(props, request)
			Expect(err).NotTo(HaveOccurred())
			Expect(container.Env).To(HaveLen(1))
			Expect(container.Env[0].Name).To(Equal(containers.EnvSpringApplicationJSON))
		})

		It("should fail with an illegal state for an empty property key", func() {
			props.EntryPointStyle = v1.EntryPointStyle_BOOT
			request.Definition.Properties = spi.Properties{{Key: "", Value: "orphan"}}

			_, err := containers.Build(props, request)
			Expect(err).To(MatchError(spi.ErrIllegalState))
		})
	})

	It("should never mix entry point encodings", func() {
		for _, style := range []v1.EntryPointStyle{
			v1.EntryPointStyle_EXEC, v1.EntryPointStyle_SHELL, v1.EntryPointStyle_BOOT,
		} {
			props.EntryPointStyle = style

			container, err := containers.Build(props, request)
			Expect(err).NotTo(HaveOccurred())

			propertyArgs := 0
			for _, arg := range container.Args {
				if arg == "--prop.1.key=prop.1.value" || arg == "--prop.2.key=prop.2.value" {
					propertyArgs++
				}
			}

			propertyEnv, jsonEnv := 0, 0
			for _, env := range container.Env {
				switch env.Name {
				case "PROP_1_KEY", "PROP_2_KEY":
					propertyEnv++
				case containers.EnvSpringApplicationJSON:
					jsonEnv++
				}
			}

			populated := 0
			for _, n := range []int{propertyArgs, propertyEnv, jsonEnv} {
				if n > 0 {
					populated++
				}
			}

			Expect(populated).To(Equal(1), "style %s", style)
		}
	})

	It("should add task environment variables before style variables", func() {
		props.EntryPointStyle = v1.EntryPointStyle_SHELL
		props.EnvironmentVariables = []string{"MYVAR1=MYVAL1"}
		request.SchedulerProperties[v1.PropertyEnvironmentVariables] = "MYVAR2=MYVAL2"

		container, err := containers.Build(props, request)
		Expect(err).NotTo(HaveOccurred())
		Expect(container.Env).To(Equal([]corev1.EnvVar{
			{Name: "MYVAR1", Value: "MYVAL1"},
			{Name: "MYVAR2", Value: "MYVAL2"},
			{Name: "PROP_1_KEY", Value: "prop.1.value"},
			{Name: "PROP_2_KEY", Value: "prop.2.value"},
		}))
	})

	It("should keep task environment variables in exec style", func() {
		props.EnvironmentVariables = []string{"MYVAR1=MYVAL1"}

		container, err := containers.Build(props, request)
		Expect(err).NotTo(HaveOccurred())
		Expect(container.Env).To(Equal([]corev1.EnvVar{{Name: "MYVAR1", Value: "MYVAL1"}}))
		Expect(container.Args).To(HaveLen(4))
	})

	It("should add the resolved volume mounts", func() {
		request.DeploymentProperties = map[string]string{
			v1.DeploymentPropertyVolumeMounts: "[{name: 'data', mountPath: '/data'}]",
		}

		container, err := containers.Build(props, request)
		Expect(err).NotTo(HaveOccurred())
		Expect(container.VolumeMounts).To(Equal([]corev1.VolumeMount{{Name: "data", MountPath: "/data"}}))
	})

	It("should fail without a schedule name", func() {
		request.ScheduleName = ""

		_, err := containers.Build(props, request)
		Expect(err).To(MatchError(spi.ErrInvalidArgument))
	})

	It("should fail on a malformed environment variable", func() {
		request.SchedulerProperties[v1.PropertyEnvironmentVariables] = "NOVALUE"

		_, err := containers.Build(props, request)
		Expect(err).To(MatchError(spi.ErrInvalidArgument))
	})
})

var _ = Describe("Image", func() {
	It("should return the scheme specific part", func() {
		image, err := containers.Image("docker:springcloud/app:1.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(image).To(Equal("springcloud/app:1.0"))
	})

	It("should strip the authority marker of hierarchical URIs", func() {
		image, err := containers.Image("docker://registry.example.com/app:1.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(image).To(Equal("registry.example.com/app:1.0"))
	})

	It("should keep a resource without scheme", func() {
		image, err := containers.Image("springcloud/app:1.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(image).To(Equal("springcloud/app:1.0"))
	})

	It("should fail on an unparsable URI", func() {
		_, err := containers.Image(":app")
		Expect(err).To(MatchError(spi.ErrInvalidArgument))
	})

	It("should fail on an empty resource", func() {
		_, err := containers.Image("")
		Expect(err).To(MatchError(spi.ErrInvalidArgument))
	})
})

var _ = Describe("DuplicateEnvNames", func() {
	It("should report names declared more than once", func() {
		c := corev1.Container{Env: []corev1.EnvVar{
			{Name: "FOO", Value: "task"},
			{Name: "BAR", Value: "task"},
			{Name: "FOO", Value: "style"},
			{Name: "FOO", Value: "again"},
		}}

		Expect(containers.DuplicateEnvNames(c)).To(Equal([]string{"FOO"}))
	})

	It("should report nothing for unique names", func() {
		c := corev1.Container{Env: []corev1.EnvVar{{Name: "FOO"}, {Name: "BAR"}}}

		Expect(containers.DuplicateEnvNames(c)).To(BeEmpty())
	})
})
